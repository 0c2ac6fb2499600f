package accounting

import (
	"fmt"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImbalanceError is returned when the lines of a proposed entry do not balance.
type ImbalanceError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("%s: debits sum is %s and credits sum is %s (difference %s)",
		apperrors.ErrUnbalanced, e.Debits.String(), e.Credits.String(), e.Difference().String())
}

func (e *ImbalanceError) Unwrap() error {
	return apperrors.ErrUnbalanced
}

// Difference is debits minus credits.
func (e *ImbalanceError) Difference() decimal.Decimal {
	return e.Debits.Sub(e.Credits)
}

// ReconciliationImbalanceError is returned when a session is completed without force
// and the statement does not agree with the matched ledger entries.
type ReconciliationImbalanceError struct {
	BookBalance       decimal.Decimal
	ReconciledBalance decimal.Decimal
	StatementBalance  decimal.Decimal
	Difference        decimal.Decimal
}

func (e *ReconciliationImbalanceError) Error() string {
	return fmt.Sprintf("%s: statement balance %s, reconciled balance %s (difference %s)",
		apperrors.ErrReconciliationImbalance, e.StatementBalance.String(), e.ReconciledBalance.String(), e.Difference.String())
}

func (e *ReconciliationImbalanceError) Unwrap() error {
	return apperrors.ErrReconciliationImbalance
}

// MinorUnit returns the smallest representable amount for a currency with the given minor units.
func MinorUnit(minorUnits int32) decimal.Decimal {
	return decimal.New(1, -minorUnits)
}

// FitsMinorUnit reports whether amount has no precision beyond the currency's minor unit.
func FitsMinorUnit(amount decimal.Decimal, minorUnits int32) bool {
	return amount.Equal(amount.Truncate(minorUnits))
}

// WithinTolerance reports whether diff is smaller than one minor unit.
func WithinTolerance(diff decimal.Decimal, minorUnits int32) bool {
	return diff.Abs().LessThan(MinorUnit(minorUnits))
}

// SumSides totals the debit and credit columns of lines.
func SumSides(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// SignedBalance is the signed sum (debit - credit) of ledger lines. Posting and
// reconciliation both compute balances through this function.
func SignedBalance(lines []domain.LedgerLine) decimal.Decimal {
	balance := decimal.Zero
	for _, line := range lines {
		balance = balance.Add(line.Debit).Sub(line.Credit)
	}
	return balance
}

// ValidateLine checks the one-sided, non-negative shape of a journal line.
func ValidateLine(line domain.JournalLine, minorUnits int32) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, line.Sequence)
	}
	if line.Debit.IsPositive() == line.Credit.IsPositive() {
		return fmt.Errorf("%w: line %d must carry exactly one of debit or credit", apperrors.ErrValidation, line.Sequence)
	}
	if !FitsMinorUnit(line.Amount(), minorUnits) {
		return fmt.Errorf("%w: line %d amount %s is finer than the currency minor unit", apperrors.ErrValidation, line.Sequence, line.Amount().String())
	}
	return nil
}

// ValidateJournalBalance checks that lines form a postable entry: at least two
// well-formed lines whose debits equal credits exactly.
func ValidateJournalBalance(lines []domain.JournalLine, minorUnits int32) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}
	for _, line := range lines {
		if err := ValidateLine(line, minorUnits); err != nil {
			return err
		}
	}
	debits, credits := SumSides(lines)
	if !debits.Equal(credits) {
		return &ImbalanceError{Debits: debits, Credits: credits}
	}
	return nil
}

// Reverse returns lines with debit and credit swapped.
func Reverse(lines []domain.JournalLine) []domain.JournalLine {
	reversed := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		reversed[i] = domain.JournalLine{
			Sequence:  line.Sequence,
			AccountID: line.AccountID,
			Debit:     line.Credit,
			Credit:    line.Debit,
			Memo:      line.Memo,
		}
	}
	return reversed
}
