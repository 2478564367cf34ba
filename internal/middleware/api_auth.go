package middleware

import (
	"context"
	"net/http"

	"backend/internal/model"

	"github.com/gin-gonic/gin"
)

// APIKeyResolver looks up an API key record by its token. Implemented by the
// api key service; defined here so the middleware does not depend on it.
type APIKeyResolver interface {
	ResolveAPIKey(ctx context.Context, token string) (*model.ApiKey, error)
}

const apiKeyCtx = "api_key"

// CurrentAPIKey returns the key record set by RequireAPIKey.
func CurrentAPIKey(c *gin.Context) (*model.ApiKey, bool) {
	v, ok := c.Get(apiKeyCtx)
	if !ok {
		return nil, false
	}
	key, ok := v.(*model.ApiKey)
	return key, ok
}

// RequireAPIKey authenticates the public API surface. The token is read from
// the X-API-Key header or the api_key query parameter. Access is decided by
// the grants stored on the key alone; the owning user's role is not
// consulted. The flat error shapes here are a published contract for API
// consumers and differ from the session-auth envelope.
func RequireAPIKey(resolver APIKeyResolver, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-API-Key")
		if token == "" {
			token = c.Query("api_key")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide an API key via the X-API-Key header or api_key query parameter",
			})
			return
		}

		key, err := resolver.ResolveAPIKey(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key does not exist",
			})
			return
		}

		granted := key.GrantedPermissions()
		grantSet := make(map[string]bool, len(granted))
		for _, p := range granted {
			grantSet[p] = true
		}

		for _, required := range permissions {
			if !grantSet[required] {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":    "Insufficient permissions",
					"message":  "This API key does not grant the required permissions",
					"required": permissions,
					"granted":  granted,
				})
				return
			}
		}

		c.Set(apiKeyCtx, key)
		c.Next()
	}
}
