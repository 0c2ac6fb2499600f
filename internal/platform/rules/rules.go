// Package rules loads the rule book: currency precision and validation defaults.
package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RuleBook is the YAML-backed default configuration shared by all tenants.
type RuleBook struct {
	DefaultCurrency       string            `yaml:"default_currency"`
	Currencies            []domain.Currency `yaml:"currencies"`
	DocumentRequiredTypes []string          `yaml:"document_required_types"`
	ApprovalThreshold     string            `yaml:"approval_threshold"`

	threshold  decimal.Decimal
	currencies map[string]domain.Currency
}

// Default is used when no rules file is configured.
func Default() *RuleBook {
	book := &RuleBook{
		DefaultCurrency: "USD",
		Currencies: []domain.Currency{
			{CurrencyCode: "USD", Name: "US Dollar", MinorUnits: 2},
			{CurrencyCode: "EUR", Name: "Euro", MinorUnits: 2},
			{CurrencyCode: "JPY", Name: "Japanese Yen", MinorUnits: 0},
			{CurrencyCode: "BHD", Name: "Bahraini Dinar", MinorUnits: 3},
		},
		DocumentRequiredTypes: []string{string(domain.TypePurchase)},
		ApprovalThreshold:     "0",
	}
	// The literal above is always valid.
	_ = book.index()
	return book
}

// Load reads and parses a rules file.
func Load(path string) (*RuleBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML rule book.
func Parse(data []byte) (*RuleBook, error) {
	var book RuleBook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if err := book.index(); err != nil {
		return nil, err
	}
	return &book, nil
}

func (b *RuleBook) index() error {
	b.currencies = make(map[string]domain.Currency, len(b.Currencies))
	for _, c := range b.Currencies {
		code := strings.ToUpper(strings.TrimSpace(c.CurrencyCode))
		if code == "" {
			return fmt.Errorf("%w: currency without code in rules", apperrors.ErrValidation)
		}
		if c.MinorUnits < 0 || c.MinorUnits > 4 {
			return fmt.Errorf("%w: currency %s has unsupported minor units %d", apperrors.ErrValidation, code, c.MinorUnits)
		}
		c.CurrencyCode = code
		b.currencies[code] = c
	}
	b.DefaultCurrency = strings.ToUpper(strings.TrimSpace(b.DefaultCurrency))
	if _, ok := b.currencies[b.DefaultCurrency]; !ok {
		return fmt.Errorf("%w: default currency %q is not listed", apperrors.ErrValidation, b.DefaultCurrency)
	}

	b.threshold = decimal.Zero
	if strings.TrimSpace(b.ApprovalThreshold) != "" {
		threshold, err := decimal.NewFromString(b.ApprovalThreshold)
		if err != nil {
			return fmt.Errorf("%w: approval_threshold %q: %v", apperrors.ErrValidation, b.ApprovalThreshold, err)
		}
		b.threshold = threshold
	}
	return nil
}

// Currency looks up a configured currency.
func (b *RuleBook) Currency(code string) (domain.Currency, bool) {
	c, ok := b.currencies[strings.ToUpper(code)]
	return c, ok
}

// MinorUnits returns the minor-unit precision of a configured currency.
func (b *RuleBook) MinorUnits(code string) (int32, error) {
	c, ok := b.Currency(code)
	if !ok {
		return 0, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, code)
	}
	return c.MinorUnits, nil
}

// TenantConfig merges the defaults with optional tenant overrides.
func (b *RuleBook) TenantConfig(settings *domain.TenantSettings, periods []domain.PeriodWindow) (domain.TenantConfig, error) {
	currency := b.DefaultCurrency
	requiredTypes := b.DocumentRequiredTypes
	threshold := b.threshold

	if settings != nil {
		if settings.CurrencyCode != nil && *settings.CurrencyCode != "" {
			currency = strings.ToUpper(*settings.CurrencyCode)
		}
		if settings.DocumentRequiredTypes != nil {
			requiredTypes = settings.DocumentRequiredTypes
		}
		if settings.ApprovalThreshold.Valid {
			threshold = settings.ApprovalThreshold.Decimal
		}
	}

	minorUnits, err := b.MinorUnits(currency)
	if err != nil {
		return domain.TenantConfig{}, err
	}

	types := make([]domain.BusinessTransactionType, 0, len(requiredTypes))
	for _, t := range requiredTypes {
		types = append(types, domain.BusinessTransactionType(strings.ToLower(strings.TrimSpace(t))))
	}

	return domain.TenantConfig{
		CurrencyCode:          currency,
		MinorUnits:            minorUnits,
		DocumentRequiredTypes: types,
		ApprovalThreshold:     threshold,
		Periods:               periods,
	}, nil
}
