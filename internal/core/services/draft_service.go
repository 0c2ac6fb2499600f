package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/core/validation"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/observability/metrics"
	"github.com/shopspring/decimal"
)

// DraftIntakeService accepts business activity, validates it and stores it as a draft.
type DraftIntakeService struct {
	BaseService
	setRepo   portsrepo.TransactionSetRepositoryFacade
	config    tenantConfigLoader
	validator *validation.Engine
	gate      portssvc.EscalationGate
}

var _ portssvc.DraftIntakeSvcFacade = (*DraftIntakeService)(nil)

func NewDraftIntakeService(
	setRepo portsrepo.TransactionSetRepositoryFacade,
	actors portsrepo.ActorRepository,
	settings portsrepo.TenantSettingsReader,
	periods portsrepo.PeriodReader,
	rules RuleSource,
	validator *validation.Engine,
	gate portssvc.EscalationGate,
	emitter audit.Emitter,
) *DraftIntakeService {
	return &DraftIntakeService{
		BaseService: newBaseService(actors, emitter),
		setRepo:     setRepo,
		config:      tenantConfigLoader{rules: rules, settings: settings, periods: periods},
		validator:   validator,
		gate:        gate,
	}
}

func toDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// stampIssues assigns identifiers to the engine's findings for one validation run.
func (s *DraftIntakeService) stampIssues(issues []domain.ValidationIssue, runID string, at time.Time) []domain.ValidationIssue {
	for i := range issues {
		issues[i].IssueID = s.newID()
		issues[i].RunID = runID
		issues[i].CreatedAt = at
	}
	return issues
}

func (s *DraftIntakeService) buildTransactions(tenantID, setID string, req []dto.DraftTransaction, at time.Time) []domain.BusinessTransaction {
	transactions := make([]domain.BusinessTransaction, 0, len(req))
	for i, t := range req {
		btID := s.newID()
		lines := make([]domain.BusinessTransactionLine, 0, len(t.Lines))
		for j, l := range t.Lines {
			lines = append(lines, domain.BusinessTransactionLine{
				LineID:                s.newID(),
				BusinessTransactionID: btID,
				TenantID:              tenantID,
				Sequence:              j + 1,
				Quantity:              nullDecimal(l.Quantity),
				UnitPrice:             nullDecimal(l.UnitPrice),
				Amount:                l.Amount,
				Metadata:              l.Metadata,
			})
		}
		transactions = append(transactions, domain.BusinessTransaction{
			BusinessTransactionID: btID,
			TransactionSetID:      setID,
			TenantID:              tenantID,
			Sequence:              i + 1,
			Type:                  domain.BusinessTransactionType(strings.ToLower(strings.TrimSpace(t.Type))),
			OccurredOn:            toDay(t.OccurredOn),
			Memo:                  strings.TrimSpace(t.Memo),
			Lines:                 lines,
			CreatedAt:             at,
		})
	}
	return transactions
}

func (s *DraftIntakeService) buildPostingIntent(tenantID, setID, actorID string, cfg domain.TenantConfig, req *dto.DraftPostingIntent, at time.Time) (*domain.PostingIntent, error) {
	if req == nil {
		return nil, nil
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = cfg.CurrencyCode
	}
	if _, err := s.config.rules.MinorUnits(currency); err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported posting currency %q", currency))
	}
	if len(req.Entries) < 2 {
		return nil, apperrors.NewValidationFailedError("a posting intent needs at least two entries")
	}

	entries := dto.ToIntentEntries(req.Entries)
	for i, e := range entries {
		if !e.Side.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("entry %d: side must be DEBIT or CREDIT", i+1))
		}
		if (e.MappingKey == "") == (e.AccountID == "") {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("entry %d: exactly one of mappingKey or accountID is required", i+1))
		}
		if e.Amount.IsNegative() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("entry %d: amount must not be negative", i+1))
		}
	}

	return &domain.PostingIntent{
		PostingIntentID:  s.newID(),
		TenantID:         tenantID,
		TransactionSetID: setID,
		CurrencyCode:     currency,
		Description:      strings.TrimSpace(req.Description),
		Entries:          entries,
		CreatedAt:        at,
		CreatedBy:        actorID,
	}, nil
}

// SubmitDraft validates the draft in memory and persists it in one transaction.
func (s *DraftIntakeService) SubmitDraft(ctx context.Context, identity domain.Identity, req dto.SubmitDraftRequest) (*domain.DraftResult, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	cfg, err := s.config.load(ctx, identity.TenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load tenant configuration")
		return nil, err
	}

	now := s.now()
	setID := s.newID()
	set := domain.TransactionSet{
		TransactionSetID: setID,
		TenantID:         identity.TenantID,
		Status:           domain.TransactionSetDraft,
		BusinessDate:     toDay(req.BusinessDate),
		Source:           strings.TrimSpace(req.Source),
		AuditFields:      domain.NewAuditFields(actor.ActorID, now),
	}
	transactions := s.buildTransactions(identity.TenantID, setID, req.Transactions, now)

	intent, err := s.buildPostingIntent(identity.TenantID, setID, actor.ActorID, cfg, req.PostingIntent, now)
	if err != nil {
		return nil, err
	}

	batch := domain.DraftBatch{Set: set, Transactions: transactions, PostingIntent: intent}
	if doc := req.Document; doc != nil {
		batch.Document = &domain.Document{
			DocumentID:  s.newID(),
			TenantID:    identity.TenantID,
			ContentHash: strings.TrimSpace(doc.ContentHash),
			StorageKey:  doc.StorageKey,
			MimeType:    doc.MimeType,
			CreatedAt:   now,
			CreatedBy:   actor.ActorID,
		}
		batch.Link = &domain.DocumentLink{
			LinkID:     s.newID(),
			TenantID:   identity.TenantID,
			EntityType: domain.EntityTypeTransactionSet,
			EntityID:   setID,
			CreatedAt:  now,
			CreatedBy:  actor.ActorID,
		}
		if ex := doc.Extraction; ex != nil {
			batch.Extraction = &domain.DocumentExtraction{
				ExtractionID: s.newID(),
				TenantID:     identity.TenantID,
				ModelID:      ex.ModelID,
				Confidence:   ex.Confidence,
				Fields:       ex.Fields,
				CreatedAt:    now,
			}
		}
	}

	runID := s.newID()
	issues := s.validator.Validate(identity.TenantID, set, transactions, batch.Document != nil, cfg)
	issues = s.stampIssues(issues, runID, now)
	batch.Run = domain.ValidationRun{
		RunID:            runID,
		TenantID:         identity.TenantID,
		TransactionSetID: setID,
		Issues:           issues,
		RanAt:            now,
		RanBy:            actor.ActorID,
	}

	decision := s.gate.Decide(issues)
	if decision.Escalate {
		batch.Set.Status = domain.TransactionSetPendingApproval
		batch.Approval = newApprovalRequest(s.newID(), identity.TenantID, setID, actor.ActorID, decision, now)
	}

	stored, err := s.setRepo.CreateDraftBatch(ctx, batch)
	if err != nil {
		s.LogError(ctx, err, "Failed to persist draft", slog.String("transaction_set_id", setID))
		metrics.IncDraftSubmission(metrics.ResultError)
		return nil, err
	}
	metrics.IncDraftSubmission(string(stored.Set.Status))

	s.LogInfo(ctx, "Draft submitted successfully",
		slog.String("transaction_set_id", setID),
		slog.String("status", string(stored.Set.Status)),
		slog.Int("issues", len(issues)))
	s.emitDraftEvents(ctx, actor, stored)

	return draftResult(stored), nil
}

func draftResult(batch *domain.DraftBatch) *domain.DraftResult {
	result := &domain.DraftResult{
		TransactionSetID:       batch.Set.TransactionSetID,
		Status:                 batch.Set.Status,
		BusinessTransactionIDs: make([]string, 0, len(batch.Transactions)),
		LineIDs:                []string{},
		Issues:                 batch.Run.Issues,
	}
	for _, bt := range batch.Transactions {
		result.BusinessTransactionIDs = append(result.BusinessTransactionIDs, bt.BusinessTransactionID)
		for _, line := range bt.Lines {
			result.LineIDs = append(result.LineIDs, line.LineID)
		}
	}
	if batch.Document != nil {
		result.DocumentID = &batch.Document.DocumentID
	}
	if batch.PostingIntent != nil {
		result.PostingIntentID = &batch.PostingIntent.PostingIntentID
	}
	if batch.Approval != nil {
		result.ApprovalID = &batch.Approval.ApprovalID
	}
	if result.Issues == nil {
		result.Issues = []domain.ValidationIssue{}
	}
	return result
}

func (s *DraftIntakeService) emitDraftEvents(ctx context.Context, actor *domain.Actor, batch *domain.DraftBatch) {
	setID := batch.Set.TransactionSetID
	s.Emit(ctx, actor, "transaction_set", setID, "transaction_set.created", map[string]any{
		"status": string(batch.Set.Status),
		"issues": len(batch.Run.Issues),
	})
	for _, bt := range batch.Transactions {
		s.Emit(ctx, actor, "business_transaction", bt.BusinessTransactionID, "business_transaction.created", map[string]any{
			"transactionSetID": setID,
			"type":             string(bt.Type),
		})
	}
	if batch.Document != nil {
		s.Emit(ctx, actor, "document", batch.Document.DocumentID, "document.linked", map[string]any{
			"transactionSetID": setID,
			"contentHash":      batch.Document.ContentHash,
		})
	}
	if batch.PostingIntent != nil {
		s.Emit(ctx, actor, "posting_intent", batch.PostingIntent.PostingIntentID, "posting_intent.created", map[string]any{
			"transactionSetID": setID,
		})
	}
	if batch.Approval != nil {
		s.Emit(ctx, actor, "approval", batch.Approval.ApprovalID, "approval.requested", map[string]any{
			"transactionSetID": setID,
			"reason":           batch.Approval.Reason,
		})
	}
}

func (s *DraftIntakeService) GetTransactionSet(ctx context.Context, identity domain.Identity, setID string) (*domain.TransactionSetDetails, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	details, err := s.setRepo.FindTransactionSetDetails(ctx, identity.TenantID, setID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load transaction set", slog.String("transaction_set_id", setID))
		}
		return nil, err
	}
	return details, nil
}

func (s *DraftIntakeService) ListTransactionSets(ctx context.Context, identity domain.Identity, params dto.ListTransactionSetsParams) (*dto.ListTransactionSetsResponse, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var status *domain.TransactionSetStatus
	if params.Status != "" {
		st := domain.TransactionSetStatus(params.Status)
		if !st.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown status %q", params.Status))
		}
		status = &st
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	sets, next, err := s.setRepo.ListTransactionSets(ctx, identity.TenantID, status, params.Limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transaction sets")
		return nil, err
	}
	if sets == nil {
		sets = []domain.TransactionSet{}
	}
	return &dto.ListTransactionSetsResponse{TransactionSets: sets, NextToken: next}, nil
}

// RevalidateTransactionSet records a new validation run. A pending set whose errors are
// gone keeps its approval open; only an administrator resolves it.
func (s *DraftIntakeService) RevalidateTransactionSet(ctx context.Context, identity domain.Identity, setID string) (*dto.RevalidateResponse, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	details, err := s.setRepo.FindTransactionSetDetails(ctx, identity.TenantID, setID)
	if err != nil {
		return nil, err
	}
	if details.Status != domain.TransactionSetDraft && details.Status != domain.TransactionSetPendingApproval {
		return nil, apperrors.NewConflictError(fmt.Sprintf("transaction set is %s and cannot be revalidated", details.Status))
	}

	cfg, err := s.config.load(ctx, identity.TenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load tenant configuration")
		return nil, err
	}

	now := s.now()
	runID := s.newID()
	issues := s.validator.Validate(identity.TenantID, details.TransactionSet, details.Transactions, len(details.DocumentIDs) > 0, cfg)
	issues = s.stampIssues(issues, runID, now)
	run := domain.ValidationRun{
		RunID:            runID,
		TenantID:         identity.TenantID,
		TransactionSetID: setID,
		Issues:           issues,
		RanAt:            now,
		RanBy:            actor.ActorID,
	}
	decision := s.gate.Decide(issues)
	escalation := newApprovalRequest(s.newID(), identity.TenantID, setID, actor.ActorID, decision, now)

	status, open, err := s.setRepo.RecordValidationRun(ctx, run, escalation)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to record validation run", slog.String("transaction_set_id", setID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction set revalidated",
		slog.String("transaction_set_id", setID),
		slog.String("status", string(status)),
		slog.Int("issues", len(issues)))
	s.Emit(ctx, actor, "transaction_set", setID, "transaction_set.revalidated", map[string]any{
		"status":    string(status),
		"issues":    len(issues),
		"escalated": decision.Escalate,
	})

	resp := &dto.RevalidateResponse{TransactionSetID: setID, Status: status, Issues: issues}
	if open != nil {
		resp.ApprovalID = &open.ApprovalID
	}
	return resp, nil
}

func (s *DraftIntakeService) VoidTransactionSet(ctx context.Context, identity domain.Identity, setID string, reason string) (*domain.TransactionSet, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationFailedError("a reason is required to void a transaction set")
	}
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	from := []domain.TransactionSetStatus{
		domain.TransactionSetDraft,
		domain.TransactionSetPendingApproval,
		domain.TransactionSetApproved,
	}
	set, err := s.setRepo.UpdateTransactionSetStatus(ctx, identity.TenantID, setID, from, domain.TransactionSetVoid, actor.ActorID, s.now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction set voided", slog.String("transaction_set_id", setID))
	s.Emit(ctx, actor, "transaction_set", setID, "transaction_set.voided", map[string]any{"reason": reason})
	return set, nil
}

// DismissIssue records a dismissal of an info or warning issue. Dismissing twice
// returns the first resolution.
func (s *DraftIntakeService) DismissIssue(ctx context.Context, identity domain.Identity, issueID string, note string) (*domain.IssueResolution, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	issue, err := s.setRepo.FindIssueByID(ctx, identity.TenantID, issueID)
	if err != nil {
		return nil, err
	}
	if issue.Severity == domain.SeverityError {
		return nil, apperrors.NewValidationFailedError("error issues cannot be dismissed; correct the data and revalidate")
	}

	resolution, err := s.setRepo.SaveIssueResolution(ctx, domain.IssueResolution{
		ResolutionID: s.newID(),
		IssueID:      issueID,
		TenantID:     identity.TenantID,
		Note:         strings.TrimSpace(note),
		ResolvedBy:   actor.ActorID,
		ResolvedAt:   s.now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to dismiss issue", slog.String("issue_id", issueID))
		return nil, err
	}

	s.Emit(ctx, actor, "validation_issue", issueID, "validation_issue.dismissed", map[string]any{
		"code":             issue.Code,
		"transactionSetID": issue.TransactionSetID,
	})
	return resolution, nil
}
