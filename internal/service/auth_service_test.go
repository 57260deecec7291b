package service_test

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(users *MockUserRepository, tokens *MockTokenRepository) *service.AuthService {
	return service.NewAuthService(users, tokens, []byte("test-secret"), time.Hour, zap.NewNop())
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	svc := newAuthService(users, tokens)

	users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.AccessToken")).Return(nil)

	user, token, err := svc.Register(context.Background(), "A@X.com", "pass1word")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEmpty(t, token)
	// stored hash must verify against the plaintext
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("pass1word")))
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	svc := newAuthService(users, tokens)

	existing := &model.User{ID: uuid.New(), Email: "a@x.com"}
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(existing, nil)

	_, _, err := svc.Register(context.Background(), "a@x.com", "pass1word")

	assert.ErrorIs(t, err, service.ErrEmailTaken)
	users.AssertExpectations(t)
}

func TestRegister_WeakPassword(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	svc := newAuthService(users, tokens)

	cases := []string{
		"ab",       // too short
		"abcdef",   // no digit
		"12345678", // no letter
	}
	for _, password := range cases {
		_, _, err := svc.Register(context.Background(), "a@x.com", password)
		assert.ErrorIs(t, err, service.ErrWeakPassword, "password %q", password)
	}
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	svc := newAuthService(users, tokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pass1word"), bcrypt.DefaultCost)
	user := &model.User{ID: uuid.New(), Email: "a@x.com", HashedPassword: string(hash)}
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.AccessToken")).Return(nil)

	token, err := svc.Login(context.Background(), "a@x.com", "pass1word")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

// Unknown email and wrong password must be indistinguishable.
func TestLogin_InvalidCredentials(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	svc := newAuthService(users, tokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct1"), bcrypt.DefaultCost)
	user := &model.User{ID: uuid.New(), Email: "a@x.com", HashedPassword: string(hash)}
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)
	users.On("FindByEmail", mock.Anything, "unknown@x.com").Return(nil, nil)

	_, err := svc.Login(context.Background(), "a@x.com", "wrong1pass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err2 := svc.Login(context.Background(), "unknown@x.com", "whatever1")
	assert.ErrorIs(t, err2, service.ErrInvalidCredentials)

	assert.Equal(t, err, err2)
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	svc := newAuthService(users, tokens)

	userID := uuid.New()
	tokens.On("DeleteByUser", mock.Anything, userID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), userID))
	tokens.AssertExpectations(t)
}
