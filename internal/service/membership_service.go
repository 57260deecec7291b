package service

import (
	"context"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MembershipService struct {
	projects    repository.ProjectRepositoryInterface
	memberships repository.MembershipRepositoryInterface
	log         *zap.Logger
}

func NewMembershipService(
	projects repository.ProjectRepositoryInterface,
	memberships repository.MembershipRepositoryInterface,
	log *zap.Logger,
) *MembershipService {
	return &MembershipService{
		projects:    projects,
		memberships: memberships,
		log:         log,
	}
}

type CreateProjectInput struct {
	Name        string
	Description string
	Subject     string
	Deadline    time.Time
}

// CreateProject creates the project and its owning membership atomically.
// The creator becomes the first, owning member with role BACKEND.
func (s *MembershipService) CreateProject(ctx context.Context, ownerID uuid.UUID, in CreateProjectInput) (*model.Project, error) {
	project := &model.Project{
		ID:           uuid.New(),
		Name:         in.Name,
		Description:  in.Description,
		Subject:      in.Subject,
		Deadline:     in.Deadline,
		ActionStatus: model.ActionStatusOpen,
	}
	owner := &model.Membership{
		ID:      uuid.New(),
		UserID:  ownerID,
		Role:    model.RoleBackend,
		IsOwner: true,
	}

	if err := s.projects.CreateWithOwner(ctx, project, owner); err != nil {
		return nil, err
	}

	s.log.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", ownerID.String()))
	return project, nil
}

// JoinProject adds a non-owning BACKEND membership for the user.
func (s *MembershipService) JoinProject(ctx context.Context, userID, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	existing, err := s.memberships.Find(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	membership := &model.Membership{
		ID:        uuid.New(),
		UserID:    userID,
		ProjectID: projectID,
		Role:      model.RoleBackend,
		IsOwner:   false,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}

	s.log.Info("user joined project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()))
	return project, nil
}

// RemoveMember deletes the target membership. Only an owning member may
// remove members, and owning memberships can never be removed.
func (s *MembershipService) RemoveMember(ctx context.Context, requesterID, projectID, targetUserID uuid.UUID) error {
	requester, err := s.memberships.Find(ctx, requesterID, projectID)
	if err != nil {
		return err
	}
	if requester == nil || !requester.IsOwner {
		return ErrNotOwner
	}

	target, err := s.memberships.Find(ctx, targetUserID, projectID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}
	if target.IsOwner {
		return ErrCannotRemoveOwner
	}

	return s.memberships.Delete(ctx, target.ID)
}

// UpdateMemberRole changes the target member's role in place.
func (s *MembershipService) UpdateMemberRole(ctx context.Context, requesterID, projectID, targetUserID uuid.UUID, role model.Role) error {
	requester, err := s.memberships.Find(ctx, requesterID, projectID)
	if err != nil {
		return err
	}
	if requester == nil || !requester.IsOwner {
		return ErrNotOwner
	}

	if !role.Valid() {
		return ErrInvalidRole
	}

	target, err := s.memberships.Find(ctx, targetUserID, projectID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}

	target.Role = role
	return s.memberships.Update(ctx, target)
}

// ListMembers returns all memberships of the project with users attached.
func (s *MembershipService) ListMembers(ctx context.Context, requesterID, projectID uuid.UUID) ([]model.Membership, error) {
	membership, err := s.memberships.Find(ctx, requesterID, projectID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotMember
	}

	return s.memberships.ListByProject(ctx, projectID)
}
