package middleware

import (
	"net/http"

	"mentorhub/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets through only callers whose token role is one of roles. It
// must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Insufficient authorization"})
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
			Error:   "Forbidden",
			Message: "This action requires the " + roles[0] + " role",
		})
	}
}
