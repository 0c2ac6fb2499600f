package middleware

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// identityKey is the key used to store the authenticated identity in the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromCtx retrieves the identity stored by AuthMiddleware.
func IdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	if !ok || identity.TenantID == "" || identity.UserID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin request.
// It returns the identity and a boolean indicating if it was found.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	return IdentityFromCtx(c.Request.Context())
}
