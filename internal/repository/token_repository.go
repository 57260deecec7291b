package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.AccessToken) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.AccessToken, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

var _ TokenRepositoryInterface = (*TokenRepository)(nil)

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *TokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AccessToken, error) {
	var token model.AccessToken
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByUser revokes every token issued to the user.
func (r *TokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AccessToken{}).Error
}
