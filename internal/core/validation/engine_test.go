package validation_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/core/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var businessDate = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseConfig() domain.TenantConfig {
	return domain.TenantConfig{
		CurrencyCode:          "USD",
		MinorUnits:            2,
		DocumentRequiredTypes: []domain.BusinessTransactionType{domain.TypePurchase},
	}
}

func tx(txType domain.BusinessTransactionType, memo string, amounts ...string) domain.BusinessTransaction {
	t := domain.BusinessTransaction{Type: txType, OccurredOn: businessDate, Memo: memo}
	for i, a := range amounts {
		t.Lines = append(t.Lines, domain.BusinessTransactionLine{Sequence: i + 1, Amount: amount(a)})
	}
	return t
}

func set() domain.TransactionSet {
	return domain.TransactionSet{TransactionSetID: "set-1", TenantID: "tenant-1", Status: domain.TransactionSetDraft, BusinessDate: businessDate}
}

func codes(issues []domain.ValidationIssue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Code)
	}
	return out
}

func TestValidate_MissingDocumentForPurchaseIsSingleWarning(t *testing.T) {
	engine := validation.NewEngine()
	txns := []domain.BusinessTransaction{
		tx(domain.TypePurchase, "office chairs", "250.00"),
		tx(domain.TypeSale, "consulting", "900.00"),
	}

	issues := engine.Validate("tenant-1", set(), txns, false, baseConfig())

	require.Len(t, issues, 1)
	assert.Equal(t, validation.CodeMissingDocument, issues[0].Code)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "set-1", issues[0].TransactionSetID)
	assert.Equal(t, "tenant-1", issues[0].TenantID)
	assert.False(t, domain.HasBlockingIssue(issues))
}

func TestValidate_DocumentSatisfiesRequirement(t *testing.T) {
	engine := validation.NewEngine()
	txns := []domain.BusinessTransaction{tx(domain.TypePurchase, "paper", "12.50")}

	issues := engine.Validate("tenant-1", set(), txns, true, baseConfig())

	assert.Empty(t, issues)
}

func TestValidate_Rules(t *testing.T) {
	closedPeriod := domain.PeriodWindow{
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodClosed,
	}
	softClosed := closedPeriod
	softClosed.Status = domain.PeriodSoftClosed

	tests := []struct {
		name     string
		txns     []domain.BusinessTransaction
		cfg      func(c *domain.TenantConfig)
		wantCode string
		wantSev  domain.Severity
	}{
		{
			name:     "empty set",
			txns:     nil,
			wantCode: validation.CodeEmptyTransactionSet,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "transaction without lines",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "m")},
			wantCode: validation.CodeTransactionWithoutLines,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "negative sale amount",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "m", "-5.00")},
			wantCode: validation.CodeNegativeAmount,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "zero amount",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "m", "0")},
			wantCode: validation.CodeZeroAmountLine,
			wantSev:  domain.SeverityWarning,
		},
		{
			name:     "sub minor unit",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "m", "1.005")},
			wantCode: validation.CodeSubMinorUnitAmount,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "unknown type",
			txns:     []domain.BusinessTransaction{tx("barter", "m", "1.00")},
			wantCode: validation.CodeUnknownTransactionType,
			wantSev:  domain.SeverityWarning,
		},
		{
			name:     "closed period",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "m", "1.00")},
			cfg:      func(c *domain.TenantConfig) { c.Periods = []domain.PeriodWindow{closedPeriod} },
			wantCode: validation.CodePeriodClosed,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "soft closed period",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "m", "1.00")},
			cfg:      func(c *domain.TenantConfig) { c.Periods = []domain.PeriodWindow{softClosed} },
			wantCode: validation.CodePeriodSoftClosed,
			wantSev:  domain.SeverityWarning,
		},
		{
			name:     "approval threshold",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "m", "600.00", "500.00")},
			cfg:      func(c *domain.TenantConfig) { c.ApprovalThreshold = amount("1000") },
			wantCode: validation.CodeApprovalThresholdExceeded,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "missing memo",
			txns:     []domain.BusinessTransaction{tx(domain.TypeSale, "  ", "1.00")},
			wantCode: validation.CodeMissingMemo,
			wantSev:  domain.SeverityInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			issues := validation.NewEngine().Validate("tenant-1", set(), tt.txns, false, cfg)

			require.Contains(t, codes(issues), tt.wantCode)
			for _, issue := range issues {
				if issue.Code == tt.wantCode {
					assert.Equal(t, tt.wantSev, issue.Severity)
				}
			}
		})
	}
}

func TestValidate_LineArithmetic(t *testing.T) {
	line := domain.BusinessTransactionLine{
		Quantity:  decimal.NewNullDecimal(amount("3")),
		UnitPrice: decimal.NewNullDecimal(amount("19.99")),
		Amount:    amount("59.97"),
	}
	good := domain.BusinessTransaction{Type: domain.TypeSale, OccurredOn: businessDate, Memo: "m", Lines: []domain.BusinessTransactionLine{line}}
	line.Amount = amount("60.00")
	bad := domain.BusinessTransaction{Type: domain.TypeSale, OccurredOn: businessDate, Memo: "m", Lines: []domain.BusinessTransactionLine{line}}

	engine := validation.NewEngine()
	assert.Empty(t, engine.Validate("tenant-1", set(), []domain.BusinessTransaction{good}, false, baseConfig()))

	issues := engine.Validate("tenant-1", set(), []domain.BusinessTransaction{bad}, false, baseConfig())
	require.Len(t, issues, 1)
	assert.Equal(t, validation.CodeLineAmountMismatch, issues[0].Code)
	assert.Equal(t, "59.97", issues[0].Context["expected"])
}

func TestValidate_AdjustmentMayBeNegative(t *testing.T) {
	issues := validation.NewEngine().Validate("tenant-1", set(),
		[]domain.BusinessTransaction{tx(domain.TypeAdjustment, "write-down", "-40.00")}, false, baseConfig())
	assert.Empty(t, issues)
}

func TestValidate_OccurredAfterBusinessDate(t *testing.T) {
	late := tx(domain.TypeSale, "m", "1.00")
	late.OccurredOn = businessDate.AddDate(0, 0, 1)

	issues := validation.NewEngine().Validate("tenant-1", set(), []domain.BusinessTransaction{late}, false, baseConfig())

	require.Len(t, issues, 1)
	assert.Equal(t, validation.CodeOccurredAfterBusinessDate, issues[0].Code)
	assert.Equal(t, "2025-04-01", issues[0].Context["occurredOn"])
}

func TestValidate_IsDeterministic(t *testing.T) {
	txns := []domain.BusinessTransaction{
		tx(domain.TypePurchase, "", "-1.005", "0"),
		tx("barter", "", "3.00"),
		tx(domain.TypeSale, "m"),
	}
	engine := validation.NewEngine()

	first := engine.Validate("tenant-1", set(), txns, false, baseConfig())
	second := engine.Validate("tenant-1", set(), txns, false, baseConfig())

	assert.Equal(t, first, second)
	assert.True(t, domain.HasBlockingIssue(first))
	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, first[i-1].Code, first[i].Code)
	}
}

func TestValidate_CustomRules(t *testing.T) {
	always := validation.Rule{
		Code:     "ALWAYS",
		Severity: domain.SeverityInfo,
		Check: func(in validation.Input) []validation.Finding {
			return []validation.Finding{{Message: "hello " + in.TenantID}}
		},
	}

	issues := validation.NewEngineWithRules(always).Validate("tenant-9", set(), nil, false, baseConfig())

	require.Len(t, issues, 1)
	assert.Equal(t, "hello tenant-9", issues[0].Message)
}
