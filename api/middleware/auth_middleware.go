// api/middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/versehub/versehub/config"
	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/domain"
	"github.com/versehub/versehub/internal/logger"
	"github.com/versehub/versehub/internal/store"
)

var (
	customLog = logger.NewLogger()
)

// IdentityKey is the gin context key under which the resolved credential
// is stored for downstream handlers.
const IdentityKey = "identity"

// Identity returns the credential AuthMiddleware stored in the context.
func Identity(c *gin.Context) (*domain.Credential, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	record, ok := value.(*domain.Credential)
	return record, ok
}

// AuthMiddleware creates a gin middleware guarding protected routes. All
// token parsing goes through auth.ResolveIdentity; the middleware only
// moves the result into the request context. Every rejection is the same
// generic 401.
func AuthMiddleware(cfg *config.Config, creds *store.CredentialStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := auth.ResolveIdentity(c.GetHeader("Authorization"), cfg.JWTSecret, creds)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired authentication token."})
			return
		}

		customLog.Debugf("AuthMiddleware: authenticated subject %q", record.Username)
		c.Set(IdentityKey, record)

		c.Next()
	}
}

// RequireScope creates a middleware rejecting authenticated callers that
// lack the named scope. Must run after AuthMiddleware.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok := Identity(c)
		if !ok {
			_ = c.Error(auth.ErrUnauthorized)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired authentication token."})
			return
		}
		if !record.HasScope(scope) {
			_ = c.Error(auth.ErrForbidden)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
			return
		}
		c.Next()
	}
}
