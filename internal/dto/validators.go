package dto

import (
	"reflect"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the custom binding tags used by the request DTOs.
// decimal.Decimal fields are presented to the validator as their string form.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("entry_side", validateEntrySide); err != nil {
		return err
	}
	return v.RegisterValidation("decimal_nonneg", validateDecimalNonNegative)
}

func validateEntrySide(fl validator.FieldLevel) bool {
	return domain.EntrySide(fl.Field().String()).IsValid()
}

func validateDecimalNonNegative(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative()
}
