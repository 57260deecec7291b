package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"taskhub/internal/auth"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 3

type AuthService struct {
	users    repository.UserRepositoryInterface
	tokens   repository.TokenRepositoryInterface
	secret   []byte
	tokenTTL time.Duration
	log      *zap.Logger
}

func NewAuthService(
	users repository.UserRepositoryInterface,
	tokens repository.TokenRepositoryInterface,
	secret []byte,
	tokenTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates the user and issues a first token.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(email)

	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(ctx, user.ID)
}

// Logout revokes every token of the caller.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

func (s *AuthService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	record := &model.AccessToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}
	return auth.GenerateToken(s.secret, userID, record.ID, s.tokenTTL)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
