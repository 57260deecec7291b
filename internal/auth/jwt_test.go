package auth_test

import (
	"testing"
	"time"

	"taskhub/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret-key")

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()
	tokenID := uuid.New()

	tokenStr, err := auth.GenerateToken(testSecret, userID, tokenID, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenStr)

	claims, err := auth.ParseToken(testSecret, tokenStr)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenStr, err := auth.GenerateToken(testSecret, uuid.New(), uuid.New(), time.Hour)
	assert.NoError(t, err)

	claims, err := auth.ParseToken([]byte("another-secret"), tokenStr)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Expired(t *testing.T) {
	tokenStr, err := auth.GenerateToken(testSecret, uuid.New(), uuid.New(), -time.Minute)
	assert.NoError(t, err)

	claims, err := auth.ParseToken(testSecret, tokenStr)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Malformed(t *testing.T) {
	claims, err := auth.ParseToken(testSecret, "not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
