// Package export renders reconciliation reports.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

const dateLayout = "2006-01-02"

func statusLabel(session domain.ReconciliationSession, result domain.ReconciliationResult) string {
	switch {
	case !result.Completed:
		return string(session.Status)
	case result.Forced:
		return "completed (forced)"
	default:
		return "completed"
	}
}

func matchedLabel(line domain.StatementLine) string {
	if line.MatchedEntryID == nil {
		return ""
	}
	return *line.MatchedEntryID
}

// BuildReconciliationPDF renders a one-page summary followed by the statement lines.
func BuildReconciliationPDF(session domain.ReconciliationSession, result domain.ReconciliationResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Bank Reconciliation")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Session: %s", session.SessionID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Account: %s", session.AccountID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Statement date: %s", session.StatementDate.Format(dateLayout)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", statusLabel(session, result)))
	pdf.Ln(5)
	if session.CompletedAt != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Completed: %s", session.CompletedAt.Format(time.RFC3339)))
		pdf.Ln(5)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Statement balance (%s): %s", session.CurrencyCode, result.StatementBalance.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Book balance: %s", result.BookBalance.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Reconciled balance: %s", result.ReconciledBalance.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Difference: %s", result.Difference.String()))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Posted", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(65, 6, "Matched entry", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, line := range session.Lines {
		pdf.CellFormat(25, 6, line.PostedOn.Format(dateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, truncate(line.Description, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, line.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(65, 6, matchedLabel(line), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReconciliationXLSX renders a summary sheet and a lines sheet.
func BuildReconciliationXLSX(session domain.ReconciliationSession, result domain.ReconciliationResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	linesSheet := "lines"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return nil, err
	}

	summary := [][2]any{
		{"Bank Reconciliation", ""},
		{"Session", session.SessionID},
		{"Account", session.AccountID},
		{"Currency", session.CurrencyCode},
		{"Statement date", session.StatementDate.Format(dateLayout)},
		{"Status", statusLabel(session, result)},
		{"Statement balance", result.StatementBalance.InexactFloat64()},
		{"Book balance", result.BookBalance.InexactFloat64()},
		{"Reconciled balance", result.ReconciledBalance.InexactFloat64()},
		{"Difference", result.Difference.InexactFloat64()},
		{"Balanced", result.Balanced},
	}
	for i, row := range summary {
		r := i + 1
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), row[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), row[1])
	}

	_ = f.SetCellValue(linesSheet, "A1", "Posted")
	_ = f.SetCellValue(linesSheet, "B1", "External ID")
	_ = f.SetCellValue(linesSheet, "C1", "Description")
	_ = f.SetCellValue(linesSheet, "D1", "Amount")
	_ = f.SetCellValue(linesSheet, "E1", "Matched entry")
	for i, line := range session.Lines {
		row := i + 2
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("A%d", row), line.PostedOn.Format(dateLayout))
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("B%d", row), line.ExternalID)
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("C%d", row), line.Description)
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("D%d", row), line.Amount.InexactFloat64())
		_ = f.SetCellValue(linesSheet, fmt.Sprintf("E%d", row), matchedLabel(line))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
