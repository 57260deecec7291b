package handler

import (
	"net/http"

	"taskhub/internal/model"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemberHandler struct {
	memberships *service.MembershipService
}

func NewMemberHandler(memberships *service.MembershipService) *MemberHandler {
	return &MemberHandler{memberships: memberships}
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type MemberResponse struct {
	UserID  uuid.UUID  `json:"user_id"`
	Email   string     `json:"email"`
	Role    model.Role `json:"role"`
	IsOwner bool       `json:"is_owner"`
}

// List godoc
// @Summary  List project members (members only)
// @Tags     Members
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Router   /projects/{id}/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	memberships, err := h.memberships.ListMembers(c.Request.Context(), userID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]MemberResponse, len(memberships))
	for i, membership := range memberships {
		response[i] = MemberResponse{
			UserID:  membership.UserID,
			Email:   membership.User.Email,
			Role:    membership.Role,
			IsOwner: membership.IsOwner,
		}
	}

	respondData(c, http.StatusOK, response)
}

// Remove godoc
// @Summary  Remove a member (owner only, owners cannot be removed)
// @Tags     Members
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Project ID"
// @Param    user_id path string true "Target user ID"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /projects/{id}/members/{user_id} [delete]
func (h *MemberHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	targetUserID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.memberships.RemoveMember(c.Request.Context(), userID, projectID, targetUserID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Member removed successfully", nil)
}

// UpdateRole godoc
// @Summary  Change a member's role (owner only)
// @Tags     Members
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Project ID"
// @Param    user_id path string true "Target user ID"
// @Param    request body UpdateRoleRequest true "New role"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Failure  422 {object} map[string]interface{}
// @Router   /projects/{id}/members/{user_id}/role [put]
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	targetUserID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid input")
		return
	}

	err := h.memberships.UpdateMemberRole(c.Request.Context(), userID, projectID, targetUserID, model.Role(req.Role))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Member role updated successfully", nil)
}
