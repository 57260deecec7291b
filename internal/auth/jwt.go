package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is what a parsed bearer token resolves to. TokenID identifies the
// access_tokens row backing the token; without that row the token is revoked.
type Claims struct {
	UserID  uuid.UUID
	TokenID uuid.UUID
}

func GenerateToken(secret []byte, userID, tokenID uuid.UUID, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     tokenID.String(),
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil || claims["jti"] == nil {
		return nil, ErrInvalidToken
	}

	rawUser, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	rawJTI, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return nil, ErrInvalidToken
	}
	tokenID, err := uuid.Parse(rawJTI)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, TokenID: tokenID}, nil
}
