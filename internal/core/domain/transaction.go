package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessTransactionType classifies one logical business event.
type BusinessTransactionType string

const (
	TypeSale       BusinessTransactionType = "sale"
	TypePurchase   BusinessTransactionType = "purchase"
	TypeExpense    BusinessTransactionType = "expense"
	TypeReceipt    BusinessTransactionType = "receipt"
	TypePayment    BusinessTransactionType = "payment"
	TypeAdjustment BusinessTransactionType = "adjustment"
)

// IsKnown reports whether t is one of the predefined types.
func (t BusinessTransactionType) IsKnown() bool {
	switch t {
	case TypeSale, TypePurchase, TypeExpense, TypeReceipt, TypePayment, TypeAdjustment:
		return true
	}
	return false
}

// BusinessTransaction is one logical event (a sale, a purchase, an adjustment) inside a TransactionSet.
type BusinessTransaction struct {
	BusinessTransactionID string                    `json:"businessTransactionID" db:"business_transaction_id"`
	TransactionSetID      string                    `json:"transactionSetID" db:"transaction_set_id"`
	TenantID              string                    `json:"tenantID" db:"tenant_id"`
	Sequence              int                       `json:"sequence" db:"sequence"`
	Type                  BusinessTransactionType   `json:"type" db:"transaction_type"`
	OccurredOn            time.Time                 `json:"occurredOn" db:"occurred_on"`
	Memo                  string                    `json:"memo" db:"memo"`
	Lines                 []BusinessTransactionLine `json:"lines" db:"-"`
	CreatedAt             time.Time                 `json:"createdAt" db:"created_at"`
}

// BusinessTransactionLine is an ordered line of a BusinessTransaction.
type BusinessTransactionLine struct {
	LineID                string              `json:"lineID" db:"line_id"`
	BusinessTransactionID string              `json:"businessTransactionID" db:"business_transaction_id"`
	TenantID              string              `json:"tenantID" db:"tenant_id"`
	Sequence              int                 `json:"sequence" db:"sequence"`
	Quantity              decimal.NullDecimal `json:"quantity" db:"quantity"`
	UnitPrice             decimal.NullDecimal `json:"unitPrice" db:"unit_price"`
	Amount                decimal.Decimal     `json:"amount" db:"amount"`
	Metadata              map[string]any      `json:"metadata,omitempty" db:"metadata"`
}
