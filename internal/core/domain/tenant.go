package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenantRole defines the role an identity holds within a tenant.
type TenantRole string

const (
	RoleAdmin    TenantRole = "ADMIN"
	RoleMember   TenantRole = "MEMBER"
	RoleReadOnly TenantRole = "READONLY" // Read-only access to tenant data
)

// Satisfies reports whether r meets or exceeds the required role.
func (r TenantRole) Satisfies(required TenantRole) bool {
	switch required {
	case RoleReadOnly:
		return r == RoleReadOnly || r == RoleMember || r == RoleAdmin
	case RoleMember:
		return r == RoleMember || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	default:
		return false
	}
}

// Identity is the authenticated caller. TenantID always comes from the token, never from a request body.
type Identity struct {
	TenantID string
	UserID   string
	Role     TenantRole
}

// Actor is the tenant-scoped record for a user that performs financial actions.
// Created lazily with insert-or-fetch on first use.
type Actor struct {
	ActorID   string    `json:"actorID" db:"actor_id"`
	TenantID  string    `json:"tenantID" db:"tenant_id"`
	UserID    string    `json:"userID" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// TenantSettings are per-tenant overrides of the rule book. Nil or invalid fields inherit the defaults.
type TenantSettings struct {
	TenantID              string              `json:"tenantID" db:"tenant_id"`
	CurrencyCode          *string             `json:"currencyCode,omitempty" db:"currency_code"`
	DocumentRequiredTypes []string            `json:"documentRequiredTypes,omitempty" db:"document_required_types"`
	ApprovalThreshold     decimal.NullDecimal `json:"approvalThreshold" db:"approval_threshold"`
}
