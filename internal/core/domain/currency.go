package domain

// Currency represents a supported currency and its minor-unit precision.
type Currency struct {
	CurrencyCode string `json:"currencyCode" yaml:"code"` // e.g. "USD"
	Name         string `json:"name" yaml:"name"`
	MinorUnits   int32  `json:"minorUnits" yaml:"minor_units"` // 2 for USD, 0 for JPY, 3 for BHD
}
