package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

// RequireRole gates a route group to an allowed set of roles. It must
// run after Auth, which puts the resolved user on the context.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
			c.Abort()
			return
		}

		if _, ok := allowedSet[user.Role]; !ok {
			utils.RespondError(c, utils.NewAppError(http.StatusForbidden, "FORBIDDEN",
				"role "+user.Role+" is not allowed to access this resource", nil))
			c.Abort()
			return
		}

		c.Next()
	}
}
