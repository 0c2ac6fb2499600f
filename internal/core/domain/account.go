package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account is an entry in the tenant's chart of accounts.
type Account struct {
	AccountID    string      `json:"accountID" db:"account_id"`
	TenantID     string      `json:"tenantID" db:"tenant_id"`
	Code         string      `json:"code" db:"code"`
	Name         string      `json:"name" db:"name"`
	AccountType  AccountType `json:"accountType" db:"account_type"`
	CurrencyCode string      `json:"currencyCode" db:"currency_code"`
	IsActive     bool        `json:"isActive" db:"is_active"`
	AuditFields
}

// AccountMapping resolves a posting-intent mapping key (e.g. "sales.revenue") to an account.
type AccountMapping struct {
	TenantID   string `json:"tenantID" db:"tenant_id"`
	MappingKey string `json:"mappingKey" db:"mapping_key"`
	AccountID  string `json:"accountID" db:"account_id"`
	AuditFields
}
