package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	CodeEmptyTransactionSet       = "EMPTY_TRANSACTION_SET"
	CodeTransactionWithoutLines   = "TRANSACTION_WITHOUT_LINES"
	CodeNegativeAmount            = "NEGATIVE_AMOUNT"
	CodeZeroAmountLine            = "ZERO_AMOUNT_LINE"
	CodeSubMinorUnitAmount        = "SUB_MINOR_UNIT_AMOUNT"
	CodeLineAmountMismatch        = "LINE_AMOUNT_MISMATCH"
	CodeMissingDocument           = "MISSING_DOCUMENT"
	CodeUnknownTransactionType    = "UNKNOWN_TRANSACTION_TYPE"
	CodeOccurredAfterBusinessDate = "OCCURRED_AFTER_BUSINESS_DATE"
	CodePeriodClosed              = "PERIOD_CLOSED"
	CodePeriodSoftClosed          = "PERIOD_SOFT_CLOSED"
	CodeApprovalThresholdExceeded = "APPROVAL_THRESHOLD_EXCEEDED"
	CodeMissingMemo               = "MISSING_MEMO"
)

// DefaultRules is the fixed rule set applied to every draft.
func DefaultRules() []Rule {
	return []Rule{
		{Code: CodeEmptyTransactionSet, Severity: domain.SeverityError, Check: checkEmptySet},
		{Code: CodeTransactionWithoutLines, Severity: domain.SeverityError, Check: checkTransactionsHaveLines},
		{Code: CodeNegativeAmount, Severity: domain.SeverityError, Check: checkNegativeAmounts},
		{Code: CodeZeroAmountLine, Severity: domain.SeverityWarning, Check: checkZeroAmounts},
		{Code: CodeSubMinorUnitAmount, Severity: domain.SeverityError, Check: checkMinorUnits},
		{Code: CodeLineAmountMismatch, Severity: domain.SeverityError, Check: checkLineArithmetic},
		{Code: CodeMissingDocument, Severity: domain.SeverityWarning, Check: checkMissingDocument},
		{Code: CodeUnknownTransactionType, Severity: domain.SeverityWarning, Check: checkKnownTypes},
		{Code: CodeOccurredAfterBusinessDate, Severity: domain.SeverityWarning, Check: checkOccurrenceDates},
		{Code: CodePeriodClosed, Severity: domain.SeverityError, Check: periodCheck(domain.PeriodClosed)},
		{Code: CodePeriodSoftClosed, Severity: domain.SeverityWarning, Check: periodCheck(domain.PeriodSoftClosed)},
		{Code: CodeApprovalThresholdExceeded, Severity: domain.SeverityError, Check: checkApprovalThreshold},
		{Code: CodeMissingMemo, Severity: domain.SeverityInfo, Check: checkMemos},
	}
}

func position(txIdx int) map[string]string {
	return map[string]string{"transaction": strconv.Itoa(txIdx + 1)}
}

func linePosition(txIdx, lineIdx int) map[string]string {
	return map[string]string{
		"transaction": strconv.Itoa(txIdx + 1),
		"line":        strconv.Itoa(lineIdx + 1),
	}
}

func eachLine(in Input, fn func(txIdx, lineIdx int, tx domain.BusinessTransaction, line domain.BusinessTransactionLine) *Finding) []Finding {
	var findings []Finding
	for i, tx := range in.Transactions {
		for j, line := range tx.Lines {
			if f := fn(i, j, tx, line); f != nil {
				findings = append(findings, *f)
			}
		}
	}
	return findings
}

func checkEmptySet(in Input) []Finding {
	if len(in.Transactions) > 0 {
		return nil
	}
	return []Finding{{Message: "transaction set contains no business transactions"}}
}

func checkTransactionsHaveLines(in Input) []Finding {
	var findings []Finding
	for i, tx := range in.Transactions {
		if len(tx.Lines) == 0 {
			findings = append(findings, Finding{
				Message: fmt.Sprintf("transaction %d has no lines", i+1),
				Context: position(i),
			})
		}
	}
	return findings
}

func checkNegativeAmounts(in Input) []Finding {
	return eachLine(in, func(i, j int, tx domain.BusinessTransaction, line domain.BusinessTransactionLine) *Finding {
		if tx.Type == domain.TypeAdjustment || !line.Amount.IsNegative() {
			return nil
		}
		ctx := linePosition(i, j)
		ctx["amount"] = line.Amount.String()
		return &Finding{
			Message: fmt.Sprintf("line %d of transaction %d has negative amount %s; only adjustments may be negative", j+1, i+1, line.Amount.String()),
			Context: ctx,
		}
	})
}

func checkZeroAmounts(in Input) []Finding {
	return eachLine(in, func(i, j int, _ domain.BusinessTransaction, line domain.BusinessTransactionLine) *Finding {
		if !line.Amount.IsZero() {
			return nil
		}
		return &Finding{
			Message: fmt.Sprintf("line %d of transaction %d has a zero amount", j+1, i+1),
			Context: linePosition(i, j),
		}
	})
}

func checkMinorUnits(in Input) []Finding {
	return eachLine(in, func(i, j int, _ domain.BusinessTransaction, line domain.BusinessTransactionLine) *Finding {
		if accounting.FitsMinorUnit(line.Amount, in.Config.MinorUnits) {
			return nil
		}
		ctx := linePosition(i, j)
		ctx["amount"] = line.Amount.String()
		ctx["currency"] = in.Config.CurrencyCode
		return &Finding{
			Message: fmt.Sprintf("line %d of transaction %d amount %s is finer than %s allows", j+1, i+1, line.Amount.String(), in.Config.CurrencyCode),
			Context: ctx,
		}
	})
}

func checkLineArithmetic(in Input) []Finding {
	return eachLine(in, func(i, j int, _ domain.BusinessTransaction, line domain.BusinessTransactionLine) *Finding {
		if !line.Quantity.Valid || !line.UnitPrice.Valid {
			return nil
		}
		expected := line.Quantity.Decimal.Mul(line.UnitPrice.Decimal).Round(in.Config.MinorUnits)
		if expected.Equal(line.Amount) {
			return nil
		}
		ctx := linePosition(i, j)
		ctx["expected"] = expected.String()
		ctx["amount"] = line.Amount.String()
		return &Finding{
			Message: fmt.Sprintf("line %d of transaction %d: quantity x unit price is %s but amount is %s", j+1, i+1, expected.String(), line.Amount.String()),
			Context: ctx,
		}
	})
}

func checkMissingDocument(in Input) []Finding {
	if in.HasDocument {
		return nil
	}
	var types []string
	seen := map[domain.BusinessTransactionType]bool{}
	for _, tx := range in.Transactions {
		if in.Config.RequiresDocument(tx.Type) && !seen[tx.Type] {
			seen[tx.Type] = true
			types = append(types, string(tx.Type))
		}
	}
	if len(types) == 0 {
		return nil
	}
	return []Finding{{
		Message: fmt.Sprintf("no evidentiary document attached for %s transaction(s)", strings.Join(types, ", ")),
		Context: map[string]string{"types": strings.Join(types, ",")},
	}}
}

func checkKnownTypes(in Input) []Finding {
	var findings []Finding
	for i, tx := range in.Transactions {
		if tx.Type.IsKnown() {
			continue
		}
		ctx := position(i)
		ctx["type"] = string(tx.Type)
		findings = append(findings, Finding{
			Message: fmt.Sprintf("transaction %d has unrecognised type %q", i+1, tx.Type),
			Context: ctx,
		})
	}
	return findings
}

func checkOccurrenceDates(in Input) []Finding {
	var findings []Finding
	businessDay := in.Set.BusinessDate.Format("2006-01-02")
	for i, tx := range in.Transactions {
		if tx.OccurredOn.Format("2006-01-02") <= businessDay {
			continue
		}
		ctx := position(i)
		ctx["occurredOn"] = tx.OccurredOn.Format("2006-01-02")
		ctx["businessDate"] = businessDay
		findings = append(findings, Finding{
			Message: fmt.Sprintf("transaction %d occurred on %s, after the business date %s", i+1, ctx["occurredOn"], businessDay),
			Context: ctx,
		})
	}
	return findings
}

func periodCheck(status domain.PeriodStatus) func(in Input) []Finding {
	return func(in Input) []Finding {
		for _, period := range in.Config.Periods {
			if period.Status != status || !period.Contains(in.Set.BusinessDate) {
				continue
			}
			return []Finding{{
				Message: fmt.Sprintf("business date %s falls in a %s period (%s to %s)",
					in.Set.BusinessDate.Format("2006-01-02"), status,
					period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02")),
				Context: map[string]string{
					"periodStart": period.StartDate.Format("2006-01-02"),
					"periodEnd":   period.EndDate.Format("2006-01-02"),
				},
			}}
		}
		return nil
	}
}

func checkApprovalThreshold(in Input) []Finding {
	if !in.Config.ApprovalThreshold.IsPositive() {
		return nil
	}
	total := decimal.Zero
	for _, tx := range in.Transactions {
		for _, line := range tx.Lines {
			total = total.Add(line.Amount.Abs())
		}
	}
	if !total.GreaterThan(in.Config.ApprovalThreshold) {
		return nil
	}
	return []Finding{{
		Message: fmt.Sprintf("total amount %s exceeds the approval threshold %s", total.String(), in.Config.ApprovalThreshold.String()),
		Context: map[string]string{
			"total":     total.String(),
			"threshold": in.Config.ApprovalThreshold.String(),
		},
	}}
}

func checkMemos(in Input) []Finding {
	var findings []Finding
	for i, tx := range in.Transactions {
		if strings.TrimSpace(tx.Memo) != "" {
			continue
		}
		findings = append(findings, Finding{
			Message: fmt.Sprintf("transaction %d has no memo", i+1),
			Context: position(i),
		})
	}
	return findings
}
