package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/services"
)

const actorKey = "actor"

// RequireAuth validates the Bearer token on the request and stores the
// authenticated actor (staff id, username, role) in the Gin context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	tokens := services.NewTokenService(cfg)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header is required",
				},
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Failed to validate token",
				},
			})
			c.Abort()
			return
		}

		c.Set(actorKey, services.Actor{
			ID:       claims.StaffID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// GetActor extracts the authenticated actor from the Gin context
func GetActor(c *gin.Context) (services.Actor, error) {
	value, exists := c.Get(actorKey)
	if !exists {
		return services.Actor{}, &AuthError{Code: "MISSING_ACTOR", Message: "Actor not found in context"}
	}

	actor, ok := value.(services.Actor)
	if !ok {
		return services.Actor{}, &AuthError{Code: "INVALID_ACTOR", Message: "Actor is not in the expected format"}
	}

	return actor, nil
}

// RequireCapability denies the request unless the actor's role holds the
// capability in the policy table. Admin passes every check.
func RequireCapability(cap services.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := GetActor(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_ACTOR",
					"message": "Could not retrieve the authenticated actor",
				},
			})
			c.Abort()
			return
		}

		if !services.Can(actor.Role, cap) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
