package auth

import (
	"net/http"
	"strings"

	"halal-atlas/backend/internal/api"
	"halal-atlas/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware validates the API key from request headers. When no key
// is configured (development only; production config requires one) the
// check is skipped.
func APIKeyMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.External.APIKey == "" {
			c.Next()
			return
		}

		// X-API-Key header first, then Authorization: ApiKey <key>
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "ApiKey ") {
				apiKey = strings.TrimPrefix(authHeader, "ApiKey ")
			}
		}

		if apiKey == "" {
			api.SendError(c, http.StatusUnauthorized, api.ErrCodeUnauthorized,
				"API key is required. Provide X-API-Key header or Authorization: ApiKey <key>", "")
			c.Abort()
			return
		}

		if apiKey != cfg.External.APIKey {
			api.SendError(c, http.StatusUnauthorized, api.ErrCodeUnauthorized,
				"Invalid API key provided", "")
			c.Abort()
			return
		}

		c.Next()
	}
}
