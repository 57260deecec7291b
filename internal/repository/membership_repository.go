package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

type MembershipRepositoryInterface interface {
	Create(ctx context.Context, membership *model.Membership) error
	Find(ctx context.Context, userID, projectID uuid.UUID) (*model.Membership, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Membership, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
	Update(ctx context.Context, membership *model.Membership) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ MembershipRepositoryInterface = (*MembershipRepository)(nil)

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// Find returns the membership for (user, project), or nil when the user is
// not a member.
func (r *MembershipRepository) Find(ctx context.Context, userID, projectID uuid.UUID) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *MembershipRepository) Update(ctx context.Context, membership *model.Membership) error {
	return r.db.WithContext(ctx).Save(membership).Error
}

func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Membership{}, "id = ?", id).Error
}
