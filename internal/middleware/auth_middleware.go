package middleware

import (
	"net/http"
	"strings"

	"taskhub/internal/auth"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key under which the authenticated caller's
// uuid is stored.
const UserIDKey = "userID"

// AuthMiddleware validates the bearer token and resolves it to a user id.
// The signature must check out and the backing access token row must still
// exist; logout deletes the row, which revokes the token.
func AuthMiddleware(secret string, tokens repository.TokenRepositoryInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Authorization header is required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Authorization header format must be Bearer {token}",
			})
			return
		}

		claims, err := auth.ParseToken([]byte(secret), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Invalid or expired token",
			})
			return
		}

		record, err := tokens.GetByID(c.Request.Context(), claims.TokenID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status": "error",
				"error":  "Failed to validate token",
			})
			return
		}
		if record == nil || record.UserID != claims.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
