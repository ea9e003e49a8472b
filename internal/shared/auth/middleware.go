package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/johithjpr-lab/ecommerce-platform/internal/shared/errors"
)

const identityContextKey = "auth.identity"

// Middleware extracts the bearer token, verifies it, and stores the identity
// on the gin context. Requests without a valid token are rejected with 401.
func Middleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid bearer token"))
			c.Abort()
			return
		}
		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// RequireAdmin rejects callers whose verified identity lacks the admin role.
// Must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := FromContext(c)
		if !ok || !identity.IsAdmin() {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// FromContext returns the verified identity stored by Middleware.
func FromContext(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
