package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

const userContextKey = "auth.user"

// Small interfaces so tests can fake the token manager and the user
// lookup.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Auth resolves the caller from the bearer token and attaches the full
// user record to the request context. Requests without a valid,
// still-existing user never reach a handler.
func Auth(tokens TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing token")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "missing token")
			return
		}

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "user not found")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, nil))
	c.Abort()
}
