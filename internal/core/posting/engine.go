// Package posting is the single writer of the ledger. Journal entries, journal
// lines and reversal links are created here and nowhere else.
package posting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/SscSPs/finance_core/internal/observability/metrics"
	"github.com/SscSPs/finance_core/internal/utils/accounting"
	"github.com/google/uuid"
)

// CurrencyBook answers how many minor units a currency has.
type CurrencyBook interface {
	MinorUnits(code string) (int32, error)
}

// Engine turns posting intents into balanced journal entries.
type Engine struct {
	store      Store
	actors     portsrepo.ActorRepository
	currencies CurrencyBook
	emitter    audit.Emitter

	now   func() time.Time
	newID func() string
}

var _ portssvc.PostingSvc = (*Engine)(nil)

func NewEngine(store Store, actors portsrepo.ActorRepository, currencies CurrencyBook, emitter audit.Emitter) *Engine {
	return &Engine{
		store:      store,
		actors:     actors,
		currencies: currencies,
		emitter:    emitter,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

func requireRole(identity domain.Identity, role domain.TenantRole) error {
	if identity.TenantID == "" || identity.UserID == "" {
		return apperrors.NewUnauthorizedError("missing tenant identity")
	}
	if !identity.Role.Satisfies(role) {
		return apperrors.NewForbiddenError(fmt.Sprintf("role %s is required", role))
	}
	return nil
}

// Post creates the journal entry for a posting intent. Posting an accepted intent
// returns its existing entry.
func (e *Engine) Post(ctx context.Context, identity domain.Identity, postingIntentID string) (*domain.JournalEntry, error) {
	start := time.Now()
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("posting_intent_id", postingIntentID))

	if err := requireRole(identity, domain.RoleMember); err != nil {
		metrics.ObservePosting(metrics.ResultRejected, time.Since(start))
		return nil, err
	}

	actor, err := e.actors.EnsureActor(ctx, identity.TenantID, identity.UserID)
	if err != nil {
		metrics.ObservePosting(metrics.ResultError, time.Since(start))
		return nil, fmt.Errorf("failed to resolve actor: %w", err)
	}

	var (
		entry      *domain.JournalEntry
		idempotent bool
	)
	err = e.store.WithinTx(ctx, func(tx LedgerTx) error {
		intent, err := tx.LockPostingIntent(ctx, identity.TenantID, postingIntentID)
		if err != nil {
			return err
		}
		if intent.IsAccepted() {
			entry, err = tx.FindJournalEntry(ctx, identity.TenantID, *intent.JournalEntryID)
			idempotent = true
			return err
		}

		set, err := tx.LockTransactionSet(ctx, identity.TenantID, intent.TransactionSetID)
		if err != nil {
			return err
		}
		blocking, err := tx.LatestRunHasErrors(ctx, identity.TenantID, set.TransactionSetID)
		if err != nil {
			return err
		}
		if !set.EligibleForPosting(blocking) {
			return apperrors.NewConflictError(fmt.Sprintf("transaction set is %s and not eligible for posting", set.Status))
		}

		minorUnits, err := e.currencies.MinorUnits(intent.CurrencyCode)
		if err != nil {
			return err
		}
		lines, err := e.resolveLines(ctx, tx, identity.TenantID, intent.CurrencyCode, intent.Entries)
		if err != nil {
			return err
		}

		now := e.now()
		built := domain.JournalEntry{
			JournalEntryID:   e.newID(),
			TenantID:         identity.TenantID,
			PostingIntentID:  &intent.PostingIntentID,
			TransactionSetID: &set.TransactionSetID,
			EntryDate:        set.BusinessDate,
			CurrencyCode:     intent.CurrencyCode,
			Description:      intent.Description,
			CreatedAt:        now,
			CreatedBy:        actor.ActorID,
		}
		built.Lines = e.stampLines(built, lines)

		if err := accounting.ValidateJournalBalance(built.Lines, minorUnits); err != nil {
			return err
		}
		if err := tx.InsertJournalEntry(ctx, built); err != nil {
			return err
		}
		if err := tx.AcceptPostingIntent(ctx, identity.TenantID, intent.PostingIntentID, built.JournalEntryID, now); err != nil {
			return err
		}
		if err := tx.MarkTransactionSetPosted(ctx, identity.TenantID, set.TransactionSetID, set.Status, actor.ActorID, now); err != nil {
			return err
		}
		entry = &built
		return nil
	})
	if err != nil {
		metrics.ObservePosting(postingResult(err), time.Since(start))
		logger.Warn("Posting rejected", slog.String("error", err.Error()))
		return nil, err
	}

	if idempotent {
		metrics.ObservePosting(metrics.ResultIdempotent, time.Since(start))
		logger.Info("Posting intent already accepted", slog.String("journal_entry_id", entry.JournalEntryID))
		return entry, nil
	}

	metrics.ObservePosting(metrics.ResultSuccess, time.Since(start))
	logger.Info("Journal entry posted", slog.String("journal_entry_id", entry.JournalEntryID), slog.Int("lines", len(entry.Lines)))
	e.emitter.Emit(ctx, domain.AuditEvent{
		TenantID:   identity.TenantID,
		ActorID:    actor.ActorID,
		EntityType: "journal_entry",
		EntityID:   entry.JournalEntryID,
		Action:     "journal_entry.posted",
		Metadata: map[string]any{
			"posting_intent_id":  postingIntentID,
			"transaction_set_id": *entry.TransactionSetID,
			"currency_code":      entry.CurrencyCode,
		},
	})
	return entry, nil
}

func postingResult(err error) string {
	var imbalance *accounting.ImbalanceError
	switch {
	case errors.As(err, &imbalance), errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}

// resolveLines maps intent entries onto active accounts of the intent currency.
func (e *Engine) resolveLines(ctx context.Context, tx LedgerTx, tenantID, currency string, entries []domain.IntentEntry) ([]domain.JournalLine, error) {
	keys := []string{}
	for _, entry := range entries {
		if entry.AccountID == "" && entry.MappingKey != "" {
			keys = append(keys, entry.MappingKey)
		}
	}
	mapped, err := tx.ResolveMappings(ctx, tenantID, keys)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(entries))
	lines := make([]domain.JournalLine, 0, len(entries))
	for i, entry := range entries {
		accountID := entry.AccountID
		if accountID == "" {
			id, ok := mapped[entry.MappingKey]
			if !ok {
				return nil, apperrors.NewValidationFailedError(fmt.Sprintf("entry %d: no account mapped to key %q", i+1, entry.MappingKey))
			}
			accountID = id
		}
		if !entry.Side.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("entry %d: invalid side %q", i+1, entry.Side))
		}

		line := domain.JournalLine{Sequence: i + 1, AccountID: accountID, Memo: entry.Memo}
		if entry.Side == domain.Debit {
			line.Debit = entry.Amount
		} else {
			line.Credit = entry.Amount
		}
		lines = append(lines, line)
		accountIDs = append(accountIDs, accountID)
	}

	accounts, err := tx.FindAccounts(ctx, tenantID, uniqueSorted(accountIDs))
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("line %d: account %s not found", line.Sequence, line.AccountID))
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("line %d: account %s is inactive", line.Sequence, account.Code))
		}
		if account.CurrencyCode != currency {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("line %d: account %s is in %s, entry is in %s", line.Sequence, account.Code, account.CurrencyCode, currency))
		}
	}
	return lines, nil
}

func (e *Engine) stampLines(entry domain.JournalEntry, lines []domain.JournalLine) []domain.JournalLine {
	stamped := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		line.JournalLineID = e.newID()
		line.JournalEntryID = entry.JournalEntryID
		line.TenantID = entry.TenantID
		stamped[i] = line
	}
	return stamped
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Reverse books a new entry with every line's sides swapped and links it to the original.
func (e *Engine) Reverse(ctx context.Context, identity domain.Identity, journalEntryID string, reason string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("journal_entry_id", journalEntryID))

	if err := requireRole(identity, domain.RoleMember); err != nil {
		metrics.IncReversal(metrics.ResultRejected)
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		metrics.IncReversal(metrics.ResultRejected)
		return nil, apperrors.NewValidationFailedError("a reversal reason is required")
	}

	actor, err := e.actors.EnsureActor(ctx, identity.TenantID, identity.UserID)
	if err != nil {
		metrics.IncReversal(metrics.ResultError)
		return nil, fmt.Errorf("failed to resolve actor: %w", err)
	}

	var reversing *domain.JournalEntry
	err = e.store.WithinTx(ctx, func(tx LedgerTx) error {
		original, err := tx.LockJournalEntry(ctx, identity.TenantID, journalEntryID)
		if err != nil {
			return err
		}
		if original.ReversedBy != nil {
			return apperrors.NewConflictError("journal entry is already reversed by " + original.ReversedBy.ReversingEntryID)
		}
		minorUnits, err := e.currencies.MinorUnits(original.CurrencyCode)
		if err != nil {
			return err
		}

		now := e.now()
		built := domain.JournalEntry{
			JournalEntryID:   e.newID(),
			TenantID:         identity.TenantID,
			TransactionSetID: original.TransactionSetID,
			EntryDate:        now.Truncate(24 * time.Hour),
			CurrencyCode:     original.CurrencyCode,
			Description:      fmt.Sprintf("Reversal of %s: %s", original.JournalEntryID, reason),
			CreatedAt:        now,
			CreatedBy:        actor.ActorID,
		}
		built.Lines = e.stampLines(built, accounting.Reverse(original.Lines))
		if err := accounting.ValidateJournalBalance(built.Lines, minorUnits); err != nil {
			return err
		}

		link := domain.ReversalLink{
			ReversalLinkID:   e.newID(),
			TenantID:         identity.TenantID,
			ReversingEntryID: built.JournalEntryID,
			ReversedEntryID:  original.JournalEntryID,
			Reason:           reason,
			CreatedAt:        now,
			CreatedBy:        actor.ActorID,
		}
		if err := tx.InsertJournalEntry(ctx, built); err != nil {
			return err
		}
		if err := tx.InsertReversalLink(ctx, link); err != nil {
			return err
		}
		built.Reversal = &link
		reversing = &built
		return nil
	})
	if err != nil {
		metrics.IncReversal(postingResult(err))
		logger.Warn("Reversal rejected", slog.String("error", err.Error()))
		return nil, err
	}

	metrics.IncReversal(metrics.ResultSuccess)
	logger.Info("Journal entry reversed", slog.String("reversing_entry_id", reversing.JournalEntryID))
	e.emitter.Emit(ctx, domain.AuditEvent{
		TenantID:   identity.TenantID,
		ActorID:    actor.ActorID,
		EntityType: "journal_entry",
		EntityID:   reversing.JournalEntryID,
		Action:     "journal_entry.reversed",
		Metadata: map[string]any{
			"reversed_entry_id": journalEntryID,
			"reason":            reason,
		},
	})
	return reversing, nil
}

func (e *Engine) GetJournalEntry(ctx context.Context, identity domain.Identity, journalEntryID string) (*domain.JournalEntry, error) {
	if err := requireRole(identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return e.store.FindJournalEntry(ctx, identity.TenantID, journalEntryID)
}
