package middleware

import (
	"net/http"
	"strings"

	"mentorhub/models"
	"mentorhub/upstream"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware verifies the bearer token, stores the caller on the gin
// context and forwards the raw token to upstream calls made with the request
// context.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Insufficient authorization"})
			return
		}

		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.RequestLogger(c).Debug("Token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Invalid token"})
			return
		}
		userID, _ := claims.UserID()

		actor := models.Actor{UserID: userID, Role: claims.Role, MentorID: claims.MentorID}
		c.Set(utils.ClaimsContextKey, claims)
		c.Set(utils.TokenContextKey, tokenString)
		c.Set(actorContextKey, actor)
		c.Request = c.Request.WithContext(upstream.WithToken(c.Request.Context(), tokenString))

		if logger, ok := c.Get(utils.LoggerContextKey); ok {
			if l, ok := logger.(*zap.Logger); ok {
				c.Set(utils.LoggerContextKey, l.With(zap.Int64("userID", userID), zap.String("role", claims.Role)))
			}
		}
		c.Next()
	}
}

const actorContextKey = "actor"

// ActorFrom returns the caller stored by JWTAuthMiddleware.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
