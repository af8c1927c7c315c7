package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rlcurrall/collection-example/internal/shared/response"
	"github.com/rlcurrall/collection-example/pkg/token"
)

// identityKey is the gin context key holding the authenticated identity.
const identityKey = "identity"

// RequireAuth rejects requests without a verifiable bearer token and stores
// the decoded Identity in the context for downstream handlers.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the Identity stored by RequireAuth. The bool is false
// on routes that skipped authentication.
func IdentityFrom(c *gin.Context) (*token.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*token.Identity)
	return identity, ok
}
