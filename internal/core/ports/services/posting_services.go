package services

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// PostingSvc is the only path that writes the ledger.
type PostingSvc interface {
	// Post turns an accepted-eligible posting intent into a balanced journal entry.
	// Posting the same intent twice returns the entry created the first time.
	Post(ctx context.Context, identity domain.Identity, postingIntentID string) (*domain.JournalEntry, error)

	// Reverse books an offsetting entry. An entry can be reversed once.
	Reverse(ctx context.Context, identity domain.Identity, journalEntryID string, reason string) (*domain.JournalEntry, error)

	GetJournalEntry(ctx context.Context, identity domain.Identity, journalEntryID string) (*domain.JournalEntry, error)
}
