package middleware

import (
	"context"
	"errors"

	"lingua-service/internal/models"
	"lingua-service/internal/token"

	"github.com/gin-gonic/gin"
)

type contextKey string

const userContextKey = contextKey("user")

// UserLoader resolves a verified token's subject into a full user record.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Protect gates a route group behind the session cookie. It verifies the
// token, loads the user (password cleared from the projection) and binds it
// into the request context for downstream handlers.
func Protect(issuer *token.Issuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("jwt")
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"message": "Unauthorized - no token provided"})
			return
		}

		userID, err := issuer.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"message": "Unauthorized - invalid token"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(401, gin.H{"message": "Unauthorized - user not found"})
			return
		}
		user.Password = ""

		ctx := context.WithValue(c.Request.Context(), userContextKey, user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user bound by Protect.
func CurrentUser(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}
