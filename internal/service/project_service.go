package service

import (
	"context"
	"errors"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectService struct {
	projects    repository.ProjectRepositoryInterface
	memberships repository.MembershipRepositoryInterface
	tasks       repository.TaskRepositoryInterface
	log         *zap.Logger
}

func NewProjectService(
	projects repository.ProjectRepositoryInterface,
	memberships repository.MembershipRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	log *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:    projects,
		memberships: memberships,
		tasks:       tasks,
		log:         log,
	}
}

// ProjectSummary is a project annotated with the caller's own membership.
type ProjectSummary struct {
	Project      model.Project
	Role         model.Role
	IsOwner      bool
	MembersCount int64
}

// ListProjects returns every project the user is a member of.
func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]ProjectSummary, error) {
	projects, err := s.projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, project := range projects {
		membership, err := s.memberships.Find(ctx, userID, project.ID)
		if err != nil {
			return nil, err
		}
		if membership == nil {
			// listed via the membership join, so the row must exist
			continue
		}
		count, err := s.memberships.CountByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ProjectSummary{
			Project:      project,
			Role:         membership.Role,
			IsOwner:      membership.IsOwner,
			MembersCount: count,
		})
	}
	return summaries, nil
}

// GetProject resolves the whole project graph for a member.
func (s *ProjectService) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*model.Project, error) {
	membership, err := s.memberships.Find(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotMember
	}

	project, err := s.projects.GetGraph(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

type UpdateProjectInput struct {
	Name         *string
	Description  *string
	Subject      *string
	Deadline     *time.Time
	ActionStatus *model.ActionStatus
}

// UpdateProject applies the mutable fields after checking the deadline and
// completion invariants. Owning members only.
func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	membership, err := s.memberships.Find(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if membership == nil || !membership.IsOwner {
		return nil, ErrNotOwner
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if in.Deadline != nil {
		conflict, err := s.tasks.HasDeadlineAfter(ctx, projectID, *in.Deadline)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, ErrDeadlineConflict
		}
	}

	if in.ActionStatus != nil {
		if !in.ActionStatus.Valid() {
			return nil, ErrInvalidStatus
		}
		if *in.ActionStatus == model.ActionStatusCompleted {
			incomplete, err := s.tasks.HasIncomplete(ctx, projectID)
			if err != nil {
				return nil, err
			}
			if incomplete {
				return nil, ErrIncompleteTasks
			}
		}
	}

	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Subject != nil {
		project.Subject = *in.Subject
	}
	if in.Deadline != nil {
		project.Deadline = *in.Deadline
	}
	if in.ActionStatus != nil {
		project.ActionStatus = *in.ActionStatus
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes the project; memberships and tasks cascade.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	membership, err := s.memberships.Find(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if membership == nil || !membership.IsOwner {
		return ErrNotOwner
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	s.log.Info("project deleted",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()))
	return nil
}
