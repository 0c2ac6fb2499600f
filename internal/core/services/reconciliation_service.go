package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/export"
	"github.com/SscSPs/finance_core/internal/observability/metrics"
	"github.com/SscSPs/finance_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DefaultMatchWindowDays is the auto-match date window when the caller gives none.
const DefaultMatchWindowDays = 3

// StatementParser turns an uploaded bank statement into statement lines.
type StatementParser interface {
	Parse(ctx context.Context, r io.Reader) ([]domain.StatementLine, error)
}

// ReconciliationService compares bank statements with the ledger of one account.
type ReconciliationService struct {
	BaseService
	reconRepo   portsrepo.ReconciliationRepositoryFacade
	accountRepo portsrepo.AccountReader
	rules       RuleSource
	parser      StatementParser
}

var _ portssvc.ReconciliationSvcFacade = (*ReconciliationService)(nil)

func NewReconciliationService(
	reconRepo portsrepo.ReconciliationRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	actors portsrepo.ActorRepository,
	rules RuleSource,
	parser StatementParser,
	emitter audit.Emitter,
) *ReconciliationService {
	return &ReconciliationService{
		BaseService: newBaseService(actors, emitter),
		reconRepo:   reconRepo,
		accountRepo: accountRepo,
		rules:       rules,
		parser:      parser,
	}
}

func (s *ReconciliationService) minorUnits(currency string) (int32, error) {
	units, err := s.rules.MinorUnits(currency)
	if err != nil {
		return 0, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported currency %q", currency))
	}
	return units, nil
}

// openSession loads a session and requires it to be in progress.
func (s *ReconciliationService) openSession(ctx context.Context, tenantID, sessionID string) (*domain.ReconciliationSession, error) {
	session, err := s.reconRepo.FindSessionByID(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.ReconciliationInProgress {
		return nil, apperrors.NewConflictError(fmt.Sprintf("reconciliation session is %s", session.Status))
	}
	return session, nil
}

func (s *ReconciliationService) StartSession(ctx context.Context, identity domain.Identity, req dto.StartReconciliationRequest) (*domain.ReconciliationSession, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, identity.TenantID, req.AccountID)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = account.CurrencyCode
	}
	if currency != account.CurrencyCode {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("account %s is kept in %s, not %s", account.Code, account.CurrencyCode, currency))
	}
	units, err := s.minorUnits(currency)
	if err != nil {
		return nil, err
	}
	if !accounting.FitsMinorUnit(req.EndingBalance, units) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("ending balance %s is finer than the minor unit of %s", req.EndingBalance, currency))
	}

	now := s.now()
	session := domain.ReconciliationSession{
		SessionID:     s.newID(),
		TenantID:      identity.TenantID,
		AccountID:     account.AccountID,
		CurrencyCode:  currency,
		StatementDate: toDay(req.StatementDate),
		EndingBalance: req.EndingBalance,
		Status:        domain.ReconciliationInProgress,
		AuditFields:   domain.NewAuditFields(actor.ActorID, now),
	}
	if err := s.reconRepo.SaveSession(ctx, session); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation session", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation session started",
		slog.String("session_id", session.SessionID),
		slog.String("account_id", account.AccountID))
	s.Emit(ctx, actor, "reconciliation_session", session.SessionID, "reconciliation.started", map[string]any{
		"accountID":     account.AccountID,
		"statementDate": session.StatementDate.Format(time.DateOnly),
		"endingBalance": session.EndingBalance.String(),
	})
	session.Lines = []domain.StatementLine{}
	return &session, nil
}

// appendLines stamps identifiers on parsed or submitted lines and stores them.
func (s *ReconciliationService) appendLines(ctx context.Context, session *domain.ReconciliationSession, lines []domain.StatementLine) error {
	units, err := s.minorUnits(session.CurrencyCode)
	if err != nil {
		return err
	}
	for i := range lines {
		if !accounting.FitsMinorUnit(lines[i].Amount, units) {
			return apperrors.NewValidationFailedError(fmt.Sprintf("line %d: amount %s is finer than the minor unit of %s", i+1, lines[i].Amount, session.CurrencyCode))
		}
		lines[i].LineID = s.newID()
		lines[i].SessionID = session.SessionID
		lines[i].TenantID = session.TenantID
		lines[i].ExternalID = strings.TrimSpace(lines[i].ExternalID)
		lines[i].PostedOn = toDay(lines[i].PostedOn)
		lines[i].MatchedEntryID, lines[i].MatchedAt, lines[i].MatchedBy = nil, nil, nil
	}
	return s.reconRepo.AddStatementLines(ctx, session.TenantID, session.SessionID, lines)
}

func (s *ReconciliationService) AddStatementLines(ctx context.Context, identity domain.Identity, sessionID string, req dto.AddStatementLinesRequest) (*domain.ReconciliationSession, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	session, err := s.openSession(ctx, identity.TenantID, sessionID)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.StatementLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, domain.StatementLine{
			ExternalID:  l.ExternalID,
			PostedOn:    l.PostedOn,
			Description: strings.TrimSpace(l.Description),
			Amount:      l.Amount,
		})
	}
	if err := s.appendLines(ctx, session, lines); err != nil {
		return nil, err
	}

	s.Emit(ctx, actor, "reconciliation_session", sessionID, "reconciliation.lines_added", map[string]any{"count": len(lines)})
	return s.reconRepo.FindSessionByID(ctx, identity.TenantID, sessionID)
}

// ImportOFX appends the transactions of an OFX/QFX statement and returns how many were added.
func (s *ReconciliationService) ImportOFX(ctx context.Context, identity domain.Identity, sessionID string, r io.Reader) (int, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return 0, err
	}
	session, err := s.openSession(ctx, identity.TenantID, sessionID)
	if err != nil {
		return 0, err
	}

	lines, err := s.parser.Parse(ctx, r)
	if err != nil {
		return 0, apperrors.NewAppError(http.StatusBadRequest, "could not read bank statement", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	if len(lines) == 0 {
		return 0, nil
	}
	if err := s.appendLines(ctx, session, lines); err != nil {
		return 0, err
	}

	s.LogInfo(ctx, "Bank statement imported", slog.String("session_id", sessionID), slog.Int("lines", len(lines)))
	s.Emit(ctx, actor, "reconciliation_session", sessionID, "reconciliation.statement_imported", map[string]any{"count": len(lines)})
	return len(lines), nil
}

func (s *ReconciliationService) MatchLine(ctx context.Context, identity domain.Identity, sessionID string, req dto.MatchLineRequest) (*domain.StatementLine, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	session, err := s.openSession(ctx, identity.TenantID, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, line := range session.Lines {
		if line.LineID == req.LineID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NewNotFoundError("statement line " + req.LineID + " not found in session")
	}

	nets, err := s.reconRepo.ListEntryNets(ctx, identity.TenantID, session.AccountID, session.StatementDate)
	if err != nil {
		return nil, err
	}
	touches := false
	for _, n := range nets {
		if n.JournalEntryID == req.JournalEntryID {
			touches = true
			break
		}
	}
	if !touches {
		return nil, apperrors.NewValidationFailedError("journal entry does not touch the session account on or before the statement date")
	}

	line, err := s.reconRepo.MatchStatementLine(ctx, identity.TenantID, sessionID, req.LineID, req.JournalEntryID, actor.ActorID, s.now())
	if err != nil {
		return nil, err
	}
	s.Emit(ctx, actor, "statement_line", line.LineID, "reconciliation.line_matched", map[string]any{
		"sessionID":      sessionID,
		"journalEntryID": req.JournalEntryID,
	})
	return line, nil
}

// AutoMatch pairs each unmatched line with the single unmatched entry whose net on the
// account equals the line amount within windowDays. A line or entry with more than one
// candidate is left for manual matching.
func (s *ReconciliationService) AutoMatch(ctx context.Context, identity domain.Identity, sessionID string, windowDays int) ([]domain.MatchPair, error) {
	if windowDays < 0 {
		return nil, apperrors.NewValidationFailedError("windowDays must not be negative")
	}
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	session, err := s.openSession(ctx, identity.TenantID, sessionID)
	if err != nil {
		return nil, err
	}
	nets, err := s.reconRepo.ListEntryNets(ctx, identity.TenantID, session.AccountID, session.StatementDate)
	if err != nil {
		return nil, err
	}

	pairs := proposeMatches(session.Lines, nets, windowDays)
	matched := make([]domain.MatchPair, 0, len(pairs))
	for _, pair := range pairs {
		_, err := s.reconRepo.MatchStatementLine(ctx, identity.TenantID, sessionID, pair.LineID, pair.JournalEntryID, actor.ActorID, s.now())
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Skipping auto-match taken concurrently", slog.String("line_id", pair.LineID))
			continue
		}
		if err != nil {
			return nil, err
		}
		matched = append(matched, pair)
	}

	s.LogInfo(ctx, "Auto-match finished", slog.String("session_id", sessionID), slog.Int("matched", len(matched)))
	if len(matched) > 0 {
		s.Emit(ctx, actor, "reconciliation_session", sessionID, "reconciliation.auto_matched", map[string]any{"count": len(matched)})
	}
	return matched, nil
}

func withinDays(a, b time.Time, days int) bool {
	diff := toDay(a).Sub(toDay(b))
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(days)*24*time.Hour
}

// proposeMatches finds the unambiguous line/entry pairs in statement line order.
func proposeMatches(lines []domain.StatementLine, nets []domain.EntryNet, windowDays int) []domain.MatchPair {
	taken := map[string]bool{}
	for _, line := range lines {
		if line.MatchedEntryID != nil {
			taken[*line.MatchedEntryID] = true
		}
	}

	lineCandidates := map[string][]string{}
	entryCandidates := map[string]int{}
	for _, line := range lines {
		if line.IsMatched() {
			continue
		}
		for _, n := range nets {
			if taken[n.JournalEntryID] || !n.Net.Equal(line.Amount) || !withinDays(n.EntryDate, line.PostedOn, windowDays) {
				continue
			}
			lineCandidates[line.LineID] = append(lineCandidates[line.LineID], n.JournalEntryID)
			entryCandidates[n.JournalEntryID]++
		}
	}

	pairs := []domain.MatchPair{}
	for _, line := range lines {
		candidates := lineCandidates[line.LineID]
		if len(candidates) != 1 || entryCandidates[candidates[0]] != 1 {
			continue
		}
		pairs = append(pairs, domain.MatchPair{LineID: line.LineID, JournalEntryID: candidates[0]})
	}
	return pairs
}

// computeResult derives the balances of a session from the ledger.
func (s *ReconciliationService) computeResult(ctx context.Context, session *domain.ReconciliationSession) (domain.ReconciliationResult, error) {
	units, err := s.minorUnits(session.CurrencyCode)
	if err != nil {
		return domain.ReconciliationResult{}, err
	}
	ledger, err := s.reconRepo.ListLedgerLines(ctx, session.TenantID, session.AccountID, session.StatementDate)
	if err != nil {
		return domain.ReconciliationResult{}, err
	}

	matched := map[string]bool{}
	for _, line := range session.Lines {
		if line.MatchedEntryID != nil {
			matched[*line.MatchedEntryID] = true
		}
	}
	reconciledLines := make([]domain.LedgerLine, 0, len(ledger))
	for _, l := range ledger {
		if matched[l.JournalEntryID] {
			reconciledLines = append(reconciledLines, l)
		}
	}

	book := accounting.SignedBalance(ledger)
	reconciled := accounting.SignedBalance(reconciledLines)
	difference := session.EndingBalance.Sub(reconciled)
	return domain.ReconciliationResult{
		SessionID:         session.SessionID,
		Balanced:          accounting.WithinTolerance(difference, units),
		BookBalance:       book,
		ReconciledBalance: reconciled,
		StatementBalance:  session.EndingBalance,
		Difference:        difference,
	}, nil
}

// Complete finishes the session. Without force an imbalance is rejected with the balances.
func (s *ReconciliationService) Complete(ctx context.Context, identity domain.Identity, sessionID string, force bool) (*domain.ReconciliationResult, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	session, err := s.openSession(ctx, identity.TenantID, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.computeResult(ctx, session)
	if err != nil {
		metrics.IncReconciliationCompletion(metrics.ResultError)
		return nil, err
	}
	if !result.Balanced && !force {
		metrics.IncReconciliationCompletion(metrics.ResultImbalanced)
		return nil, &accounting.ReconciliationImbalanceError{
			BookBalance:       result.BookBalance,
			ReconciledBalance: result.ReconciledBalance,
			StatementBalance:  result.StatementBalance,
			Difference:        result.Difference,
		}
	}

	now := s.now()
	result.Completed = true
	result.Forced = !result.Balanced
	session.Status = domain.ReconciliationCompleted
	session.Forced = result.Forced
	session.BookBalance = decimal.NewNullDecimal(result.BookBalance)
	session.ReconciledBalance = decimal.NewNullDecimal(result.ReconciledBalance)
	session.Difference = decimal.NewNullDecimal(result.Difference)
	session.CompletedAt = &now
	session.CompletedBy = &actor.ActorID
	session.LastUpdatedAt = now
	session.LastUpdatedBy = actor.ActorID

	if err := s.reconRepo.CompleteSession(ctx, *session); err != nil {
		metrics.IncReconciliationCompletion(metrics.ResultError)
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to complete reconciliation", slog.String("session_id", sessionID))
		}
		return nil, err
	}

	label := metrics.ResultBalanced
	if result.Forced {
		label = metrics.ResultForced
	}
	metrics.IncReconciliationCompletion(label)
	s.LogInfo(ctx, "Reconciliation completed",
		slog.String("session_id", sessionID),
		slog.Bool("forced", result.Forced),
		slog.String("difference", result.Difference.String()))
	s.Emit(ctx, actor, "reconciliation_session", sessionID, "reconciliation.completed", map[string]any{
		"forced":            result.Forced,
		"forceRequested":    force,
		"bookBalance":       result.BookBalance.String(),
		"reconciledBalance": result.ReconciledBalance.String(),
		"difference":        result.Difference.String(),
	})
	return &result, nil
}

func (s *ReconciliationService) GetSession(ctx context.Context, identity domain.Identity, sessionID string) (*domain.ReconciliationSession, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.reconRepo.FindSessionByID(ctx, identity.TenantID, sessionID)
}

// ExportReport renders a completed session from its stored balances and an open one
// from a live computation.
func (s *ReconciliationService) ExportReport(ctx context.Context, identity domain.Identity, sessionID string, format string) ([]byte, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if format != export.FormatXLSX && format != export.FormatPDF {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported report format %q", format))
	}
	session, err := s.reconRepo.FindSessionByID(ctx, identity.TenantID, sessionID)
	if err != nil {
		return nil, err
	}

	var result domain.ReconciliationResult
	if session.Status == domain.ReconciliationCompleted {
		result = domain.ReconciliationResult{
			SessionID:         session.SessionID,
			Completed:         true,
			Forced:            session.Forced,
			Balanced:          !session.Forced,
			BookBalance:       session.BookBalance.Decimal,
			ReconciledBalance: session.ReconciledBalance.Decimal,
			StatementBalance:  session.EndingBalance,
			Difference:        session.Difference.Decimal,
		}
	} else {
		result, err = s.computeResult(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	var data []byte
	switch format {
	case export.FormatXLSX:
		data, err = export.BuildReconciliationXLSX(*session, result)
	case export.FormatPDF:
		data, err = export.BuildReconciliationPDF(*session, result)
	}
	if err != nil {
		metrics.IncReportExport(format, metrics.ResultError)
		s.LogError(ctx, err, "Failed to render reconciliation report", slog.String("session_id", sessionID), slog.String("format", format))
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}
	metrics.IncReportExport(format, metrics.ResultSuccess)
	return data, nil
}
