package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	tasks       repository.TaskRepositoryInterface
	memberships repository.MembershipRepositoryInterface
	projects    repository.ProjectRepositoryInterface
	users       repository.UserRepositoryInterface
	log         *zap.Logger
}

func NewTaskService(
	tasks repository.TaskRepositoryInterface,
	memberships repository.MembershipRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	users repository.UserRepositoryInterface,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:       tasks,
		memberships: memberships,
		projects:    projects,
		users:       users,
		log:         log,
	}
}

type CreateTaskInput struct {
	Title        string
	Description  string
	ParentTaskID *uuid.UUID
	OwnerID      *uuid.UUID
	Deadline     *time.Time
}

// CreateTask creates a task in the project. The parent, if given, must belong
// to the same project; the owner, if given, must be a member; the deadline
// must not pass the project deadline.
func (s *TaskService) CreateTask(ctx context.Context, creatorID, projectID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	membership, err := s.memberships.Find(ctx, creatorID, projectID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotMember
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if in.ParentTaskID != nil {
		parent, err := s.tasks.GetByID(ctx, *in.ParentTaskID)
		if err != nil {
			if errors.Is(err, repository.ErrTaskNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
		if parent.ProjectID != projectID {
			return nil, ErrInvalidParent
		}
	}

	ownerID := creatorID
	if in.OwnerID != nil {
		ownerMembership, err := s.memberships.Find(ctx, *in.OwnerID, projectID)
		if err != nil {
			return nil, err
		}
		if ownerMembership == nil {
			return nil, ErrInvalidOwner
		}
		ownerID = *in.OwnerID
	}

	if in.Deadline != nil && in.Deadline.After(project.Deadline) {
		return nil, ErrTaskDeadlineTooLate
	}

	task := &model.Task{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ParentTaskID: in.ParentTaskID,
		OwnerID:      ownerID,
		Title:        in.Title,
		Description:  in.Description,
		Status:       model.TaskStatusTodo,
		Deadline:     in.Deadline,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.log.Info("task created",
		zap.String("task_id", task.ID.String()),
		zap.String("project_id", projectID.String()))
	return task, nil
}

// ListTasks returns all tasks of the project with owners and subtasks.
func (s *TaskService) ListTasks(ctx context.Context, requesterID, projectID uuid.UUID) ([]model.Task, error) {
	membership, err := s.memberships.Find(ctx, requesterID, projectID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotMember
	}

	return s.tasks.ListByProject(ctx, projectID)
}

// GetTask resolves the task first, then gates on membership of its project.
func (s *TaskService) GetTask(ctx context.Context, requesterID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, requesterID, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Deadline    *time.Time
	OwnerEmail  *string
}

// UpdateTask applies the mutable fields and then runs completion
// propagation. The project deadline is not re-validated here.
func (s *TaskService) UpdateTask(ctx context.Context, requesterID, taskID uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, requesterID, task.ProjectID); err != nil {
		return nil, err
	}

	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if in.OwnerEmail != nil {
		owner, err := s.users.FindByEmail(ctx, strings.ToLower(*in.OwnerEmail))
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, ErrInvalidOwner
		}
		ownerMembership, err := s.memberships.Find(ctx, owner.ID, task.ProjectID)
		if err != nil {
			return nil, err
		}
		if ownerMembership == nil {
			return nil, ErrInvalidOwner
		}
		task.OwnerID = owner.ID
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Deadline != nil {
		task.Deadline = in.Deadline
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if err := s.propagateCompletion(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask requires membership plus either task ownership or an owning
// membership on the project. Subtasks cascade.
func (s *TaskService) DeleteTask(ctx context.Context, requesterID, taskID uuid.UUID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	membership, err := s.memberships.Find(ctx, requesterID, task.ProjectID)
	if err != nil {
		return err
	}
	if membership == nil {
		return ErrNotMember
	}
	if task.OwnerID != requesterID && !membership.IsOwner {
		return ErrNotTaskOwner
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.log.Info("task deleted",
		zap.String("task_id", taskID.String()),
		zap.String("user_id", requesterID.String()))
	return nil
}

// ListSubtasks returns the immediate children of the task.
func (s *TaskService) ListSubtasks(ctx context.Context, requesterID, taskID uuid.UUID) ([]model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, requesterID, task.ProjectID); err != nil {
		return nil, err
	}

	return s.tasks.ListByParent(ctx, taskID)
}

// propagateCompletion promotes the parent to DONE once every one of its
// subtasks is DONE. One-directional: a regressing subtask never demotes the
// parent, and a task without subtasks is never auto-completed.
func (s *TaskService) propagateCompletion(ctx context.Context, task *model.Task) error {
	if task.ParentTaskID == nil {
		return nil
	}

	siblings, err := s.tasks.ListByParent(ctx, *task.ParentTaskID)
	if err != nil {
		return err
	}
	if len(siblings) == 0 {
		return nil
	}
	for _, sibling := range siblings {
		if sibling.Status != model.TaskStatusDone {
			return nil
		}
	}

	parent, err := s.tasks.GetByID(ctx, *task.ParentTaskID)
	if err != nil {
		return err
	}
	if parent.Status == model.TaskStatusDone {
		return nil
	}

	parent.Status = model.TaskStatusDone
	if err := s.tasks.Update(ctx, parent); err != nil {
		return err
	}

	s.log.Info("task auto-completed",
		zap.String("task_id", parent.ID.String()),
		zap.String("project_id", parent.ProjectID.String()))
	return nil
}

func (s *TaskService) findTask(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) requireMember(ctx context.Context, userID, projectID uuid.UUID) error {
	membership, err := s.memberships.Find(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if membership == nil {
		return ErrNotMember
	}
	return nil
}
