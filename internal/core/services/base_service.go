package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Actors  portsrepo.ActorRepository
	Emitter audit.Emitter

	now   func() time.Time
	newID func() string
}

func newBaseService(actors portsrepo.ActorRepository, emitter audit.Emitter) BaseService {
	return BaseService{
		Actors:  actors,
		Emitter: emitter,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeIdentity checks that the caller carries a tenant and holds at least requiredRole.
func (s *BaseService) AuthorizeIdentity(ctx context.Context, identity domain.Identity, requiredRole domain.TenantRole) error {
	if identity.TenantID == "" || identity.UserID == "" {
		return apperrors.NewUnauthorizedError("missing tenant identity")
	}
	if !identity.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "Role check failed",
			slog.String("tenant_id", identity.TenantID),
			slog.String("user_id", identity.UserID),
			slog.String("role", string(identity.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.NewForbiddenError(fmt.Sprintf("role %s is required", requiredRole))
	}
	return nil
}

// ResolveActor authorizes the caller and returns its tenant-scoped actor.
func (s *BaseService) ResolveActor(ctx context.Context, identity domain.Identity, requiredRole domain.TenantRole) (*domain.Actor, error) {
	if err := s.AuthorizeIdentity(ctx, identity, requiredRole); err != nil {
		return nil, err
	}
	actor, err := s.Actors.EnsureActor(ctx, identity.TenantID, identity.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve actor", slog.String("user_id", identity.UserID))
		return nil, fmt.Errorf("failed to resolve actor: %w", err)
	}
	return actor, nil
}

// Emit hands an event to the audit side-channel. It never fails the caller.
func (s *BaseService) Emit(ctx context.Context, actor *domain.Actor, entityType, entityID, action string, metadata map[string]any) {
	if s.Emitter == nil {
		return
	}
	s.Emitter.Emit(ctx, domain.AuditEvent{
		TenantID:   actor.TenantID,
		ActorID:    actor.ActorID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Metadata:   metadata,
	})
}
