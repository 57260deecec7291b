package handler

import (
	"errors"
	"net/http"

	"taskhub/internal/middleware"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Uniform response envelope: {status, data?, message?, error?}.

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondMessage(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status": "error",
		"error":  message,
	})
}

// respondServiceError maps domain errors onto HTTP statuses. Unexpected
// errors become a generic 500; the detail stays server-side.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidStatus):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrNotTaskOwner):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrMemberNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCannotRemoveOwner),
		errors.Is(err, service.ErrInvalidParent),
		errors.Is(err, service.ErrInvalidOwner),
		errors.Is(err, service.ErrDeadlineConflict),
		errors.Is(err, service.ErrIncompleteTasks),
		errors.Is(err, service.ErrTaskDeadlineTooLate):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID reads the authenticated caller set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a uuid path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
