package repositories

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// ActorRepository resolves the tenant-scoped actor record for a user.
type ActorRepository interface {
	// EnsureActor returns the actor for (tenantID, userID), creating it on first use.
	// Concurrent callers for the same user observe the same actor.
	EnsureActor(ctx context.Context, tenantID, userID string) (*domain.Actor, error)
}

// TenantSettingsReader loads per-tenant overrides of the rule book.
type TenantSettingsReader interface {
	// FindTenantSettings returns apperrors.ErrNotFound when the tenant has no overrides.
	FindTenantSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error)
}
