package handler

import (
	"net/http"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	memberships *service.MembershipService
	projects    *service.ProjectService
}

func NewProjectHandler(memberships *service.MembershipService, projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{memberships: memberships, projects: projects}
}

type CreateProjectRequest struct {
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	Description string    `json:"description" binding:"omitempty,max=1000"`
	Subject     string    `json:"subject" binding:"required,max=255"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

type UpdateProjectRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Description  *string    `json:"description" binding:"omitempty,max=1000"`
	Subject      *string    `json:"subject" binding:"omitempty,max=255"`
	Deadline     *time.Time `json:"deadline"`
	ActionStatus *int       `json:"action_status"`
}

type JoinProjectRequest struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
}

type ProjectSummaryResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Subject      string             `json:"subject"`
	ActionStatus model.ActionStatus `json:"action_status"`
	Deadline     time.Time          `json:"deadline"`
	CreatedAt    time.Time          `json:"created_at"`
	Role         model.Role         `json:"role"`
	IsOwner      bool               `json:"is_owner"`
	MembersCount int64              `json:"members_count"`
}

// List godoc
// @Summary  List projects of the caller
// @Tags     Projects
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.projects.ListProjects(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]ProjectSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = ProjectSummaryResponse{
			ID:           summary.Project.ID,
			Name:         summary.Project.Name,
			Description:  summary.Project.Description,
			Subject:      summary.Project.Subject,
			ActionStatus: summary.Project.ActionStatus,
			Deadline:     summary.Project.Deadline,
			CreatedAt:    summary.Project.CreatedAt,
			Role:         summary.Role,
			IsOwner:      summary.IsOwner,
			MembersCount: summary.MembersCount,
		}
	}

	respondData(c, http.StatusOK, response)
}

// Create godoc
// @Summary  Create a project; the caller becomes the owning member
// @Tags     Projects
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body CreateProjectRequest true "Project fields"
// @Success  201 {object} map[string]interface{}
// @Failure  422 {object} map[string]interface{}
// @Router   /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid input")
		return
	}
	if !req.Deadline.After(time.Now()) {
		respondError(c, http.StatusUnprocessableEntity, "Deadline must be in the future")
		return
	}

	project, err := h.memberships.CreateProject(c.Request.Context(), userID, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Project created successfully", gin.H{
		"project":   project,
		"join_code": project.ID,
	})
}

// Join godoc
// @Summary  Join a project by its join code
// @Tags     Projects
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    request body JoinProjectRequest true "Join code (project id)"
// @Success  200 {object} map[string]interface{}
// @Failure  409 {object} map[string]interface{}
// @Router   /projects/join [post]
func (h *ProjectHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req JoinProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid input")
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid project_id format")
		return
	}

	project, err := h.memberships.JoinProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Successfully joined the project", gin.H{
		"project": project,
	})
}

// Get godoc
// @Summary  Get a project with members and tasks
// @Tags     Projects
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, project)
}

// Update godoc
// @Summary  Update project fields (owner only)
// @Tags     Projects
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Project ID"
// @Param    request body UpdateProjectRequest true "Mutable fields"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Router   /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid input")
		return
	}

	in := service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		Deadline:    req.Deadline,
	}
	if req.ActionStatus != nil {
		status := model.ActionStatus(*req.ActionStatus)
		in.ActionStatus = &status
	}

	project, err := h.projects.UpdateProject(c.Request.Context(), userID, projectID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Project updated successfully", project)
}

// Delete godoc
// @Summary  Delete a project (owner only); memberships and tasks cascade
// @Tags     Projects
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Router   /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Project deleted successfully", nil)
}
