// Package ofx reads bank statement lines from OFX/QFX downloads.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagPattern  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser converts OFX statements into unmatched statement lines.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// preprocess repairs formatting that banks commonly get wrong.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagPattern.ReplaceAllString(content, "$1>")
}

// Parse returns every bank and credit card transaction in the file as a statement
// line. Amounts keep the OFX sign: deposits are positive, withdrawals negative.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) ([]domain.StatementLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	lines := []domain.StatementLine{}
	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		converted, err := p.convert(stmt.BankTranList.Transactions)
		if err != nil {
			return nil, fmt.Errorf("bank account %s: %w", stmt.BankAcctFrom.AcctID, err)
		}
		lines = append(lines, converted...)
	}
	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		converted, err := p.convert(stmt.BankTranList.Transactions)
		if err != nil {
			return nil, fmt.Errorf("card account %s: %w", stmt.CCAcctFrom.AcctID, err)
		}
		lines = append(lines, converted...)
	}

	logger.Info("Parsed OFX statement", slog.Int("lines", len(lines)))
	return lines, nil
}

func (p *Parser) convert(transactions []ofxgo.Transaction) ([]domain.StatementLine, error) {
	lines := make([]domain.StatementLine, 0, len(transactions))
	for _, tx := range transactions {
		amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(4))
		if err != nil {
			return nil, fmt.Errorf("transaction %s has an unreadable amount: %w", tx.FiTID, err)
		}
		posted := tx.DtPosted.Time.UTC()
		day := time.Date(posted.Year(), posted.Month(), posted.Day(), 0, 0, 0, 0, time.UTC)
		lines = append(lines, domain.StatementLine{
			ExternalID:  string(tx.FiTID),
			PostedOn:    day,
			Description: description(tx),
			Amount:      amount,
		})
	}
	return lines, nil
}

func description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if name == "" && tx.Memo != "" {
		return strings.TrimSpace(string(tx.Memo))
	}
	return name
}
