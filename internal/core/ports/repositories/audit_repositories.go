package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// AuditSink writes delivered audit events. Writing the same event id twice is a no-op.
type AuditSink interface {
	WriteAuditEvent(ctx context.Context, event domain.AuditEvent) error
}

// DeadLetterStore keeps audit events whose delivery was abandoned.
type DeadLetterStore interface {
	// SaveDeadLetter inserts the event or bumps the attempt count of an existing dead letter.
	SaveDeadLetter(ctx context.Context, event domain.AuditEvent, attempts int, lastError string, at time.Time) error
	ListPendingDeadLetters(ctx context.Context, limit int) ([]domain.DeadLetter, error)
	MarkRedelivered(ctx context.Context, eventID string, at time.Time) error
	CountPendingDeadLetters(ctx context.Context) (int, error)
}

// AuditRepositoryFacade combines the audit sink and its dead-letter store
type AuditRepositoryFacade interface {
	AuditSink
	DeadLetterStore
}
