package handler

import (
	"net/http"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	Title        string     `json:"title" binding:"required,max=255"`
	Description  string     `json:"description"`
	ParentTaskID *string    `json:"parent_task_id" binding:"omitempty,uuid"`
	OwnerID      *string    `json:"owner_id" binding:"omitempty,uuid"`
	Deadline     *time.Time `json:"deadline"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Status      *int       `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	OwnerEmail  *string    `json:"owner_email" binding:"omitempty,email"`
}

// Create godoc
// @Summary  Create a task in a project (members only)
// @Tags     Tasks
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Project ID"
// @Param    request body CreateTaskRequest true "Task fields"
// @Success  201 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Router   /projects/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	in := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if req.ParentTaskID != nil {
		parentID, err := uuid.Parse(*req.ParentTaskID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid parent_task_id format")
			return
		}
		in.ParentTaskID = &parentID
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid owner_id format")
			return
		}
		in.OwnerID = &ownerID
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), userID, projectID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Task created successfully", task)
}

// ListByProject godoc
// @Summary  List project tasks with owners and subtasks (members only)
// @Tags     Tasks
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Router   /projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListTasks(c.Request.Context(), userID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, tasks)
}

// Get godoc
// @Summary  Get a task (members of its project only)
// @Tags     Tasks
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Task ID"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, task)
}

// Update godoc
// @Summary  Update task fields (members only)
// @Tags     Tasks
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "Task ID"
// @Param    request body UpdateTaskRequest true "Mutable fields"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		OwnerEmail:  req.OwnerEmail,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		in.Status = &status
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), userID, taskID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Task updated successfully", task)
}

// Delete godoc
// @Summary  Delete a task (task owner or project owner); subtasks cascade
// @Tags     Tasks
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Task ID"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Task deleted successfully", nil)
}

// Subtasks godoc
// @Summary  List immediate subtasks of a task (members only)
// @Tags     Tasks
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Task ID"
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /tasks/{id}/subtasks [get]
func (h *TaskHandler) Subtasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	subtasks, err := h.tasks.ListSubtasks(c.Request.Context(), userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, subtasks)
}
