package accounting

import (
	"errors"
	"testing"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(seq int, debit, credit string) domain.JournalLine {
	return domain.JournalLine{Sequence: seq, AccountID: "acc", Debit: dec(debit), Credit: dec(credit)}
}

func TestValidateJournalBalance(t *testing.T) {
	tests := []struct {
		name       string
		lines      []domain.JournalLine
		minorUnits int32
		wantErr    error
	}{
		{
			name:       "balanced two lines",
			lines:      []domain.JournalLine{line(1, "100.00", "0"), line(2, "0", "100.00")},
			minorUnits: 2,
		},
		{
			name:       "balanced with rounding line",
			lines:      []domain.JournalLine{line(1, "33.33", "0"), line(2, "33.33", "0"), line(3, "33.34", "0"), line(4, "0", "100.00")},
			minorUnits: 2,
		},
		{
			name:       "off by one cent",
			lines:      []domain.JournalLine{line(1, "100.00", "0"), line(2, "0", "99.99")},
			minorUnits: 2,
			wantErr:    apperrors.ErrUnbalanced,
		},
		{
			name:       "single line",
			lines:      []domain.JournalLine{line(1, "100.00", "0")},
			minorUnits: 2,
			wantErr:    apperrors.ErrValidation,
		},
		{
			name:       "both sides on one line",
			lines:      []domain.JournalLine{line(1, "10", "10"), line(2, "0", "0")},
			minorUnits: 2,
			wantErr:    apperrors.ErrValidation,
		},
		{
			name:       "sub minor unit amount",
			lines:      []domain.JournalLine{line(1, "10.005", "0"), line(2, "0", "10.005")},
			minorUnits: 2,
			wantErr:    apperrors.ErrValidation,
		},
		{
			name:       "zero minor units currency",
			lines:      []domain.JournalLine{line(1, "1500", "0"), line(2, "0", "1500")},
			minorUnits: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJournalBalance(tt.lines, tt.minorUnits)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestImbalanceErrorCarriesTotals(t *testing.T) {
	err := ValidateJournalBalance([]domain.JournalLine{line(1, "100.00", "0"), line(2, "0", "99.99")}, 2)

	var imbalance *ImbalanceError
	require.True(t, errors.As(err, &imbalance))
	assert.True(t, imbalance.Debits.Equal(dec("100.00")))
	assert.True(t, imbalance.Credits.Equal(dec("99.99")))
	assert.True(t, imbalance.Difference().Equal(dec("0.01")))
}

func TestSignedBalance(t *testing.T) {
	lines := []domain.LedgerLine{
		{Debit: dec("1000.00"), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: dec("0.01")},
		{Debit: dec("5"), Credit: decimal.Zero},
	}
	assert.True(t, SignedBalance(lines).Equal(dec("1004.99")))
	assert.True(t, SignedBalance(nil).IsZero())
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(dec("0.004"), 2))
	assert.False(t, WithinTolerance(dec("0.01"), 2))
	assert.False(t, WithinTolerance(dec("-0.01"), 2))
	assert.True(t, WithinTolerance(dec("0.9"), 0))
	assert.False(t, WithinTolerance(dec("0.001"), 3))
}

func TestReverseSwapsSides(t *testing.T) {
	reversed := Reverse([]domain.JournalLine{line(1, "40", "0"), line(2, "0", "40")})
	require.Len(t, reversed, 2)
	assert.Equal(t, domain.Credit, reversed[0].Side())
	assert.Equal(t, domain.Debit, reversed[1].Side())
	assert.NoError(t, ValidateJournalBalance(reversed, 2))
}

func TestReconciliationImbalanceErrorUnwraps(t *testing.T) {
	var err error = &ReconciliationImbalanceError{
		BookBalance:       dec("1000.00"),
		ReconciledBalance: dec("990.00"),
		StatementBalance:  dec("1000.00"),
		Difference:        dec("10.00"),
	}
	assert.ErrorIs(t, err, apperrors.ErrReconciliationImbalance)
	assert.Contains(t, err.Error(), "difference 10")
}
