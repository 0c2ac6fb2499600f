package services

import (
	"context"
	"io"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
)

// ReconciliationWriterSvc defines session operations
type ReconciliationWriterSvc interface {
	StartSession(ctx context.Context, identity domain.Identity, req dto.StartReconciliationRequest) (*domain.ReconciliationSession, error)
	AddStatementLines(ctx context.Context, identity domain.Identity, sessionID string, req dto.AddStatementLinesRequest) (*domain.ReconciliationSession, error)

	// ImportOFX parses an OFX/QFX bank statement and appends its transactions as lines.
	ImportOFX(ctx context.Context, identity domain.Identity, sessionID string, r io.Reader) (int, error)

	MatchLine(ctx context.Context, identity domain.Identity, sessionID string, req dto.MatchLineRequest) (*domain.StatementLine, error)

	// AutoMatch pairs unambiguous line/entry candidates with equal amounts within windowDays.
	AutoMatch(ctx context.Context, identity domain.Identity, sessionID string, windowDays int) ([]domain.MatchPair, error)

	// Complete finishes a session. An imbalance without force is a *ReconciliationImbalanceError.
	Complete(ctx context.Context, identity domain.Identity, sessionID string, force bool) (*domain.ReconciliationResult, error)
}

// ReconciliationReaderSvc defines read and export operations
type ReconciliationReaderSvc interface {
	GetSession(ctx context.Context, identity domain.Identity, sessionID string) (*domain.ReconciliationSession, error)

	// ExportReport renders the session as "xlsx" or "pdf".
	ExportReport(ctx context.Context, identity domain.Identity, sessionID string, format string) ([]byte, error)
}

// ReconciliationSvcFacade combines all reconciliation service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationWriterSvc
	ReconciliationReaderSvc
}
