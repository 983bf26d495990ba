package taxcalc

import (
	"math"

	"go-taxcalc/internal/shared/apperror"
	taxcalcerrors "go-taxcalc/internal/taxcalc/errors"
)

// ValidationError identifies the input field that stopped a calculation.
// It unwraps to one of the taxcalcerrors sentinels.
type ValidationError struct {
	Field  string
	Reason string
	Rule   string
	Err    error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Details() any {
	return apperror.FieldDetails{Field: e.Field, Rule: e.Rule}
}

func invalid(field, reason, rule string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Rule: rule, Err: sentinel}
}

// checkAmount rejects NaN, ±Inf and negative values. Monetary inputs are
// never clamped.
func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number", "finite", taxcalcerrors.ErrNonFiniteValue)
	}
	if v < 0 {
		return invalid(field, "must not be negative", "min", taxcalcerrors.ErrNegativeValue)
	}
	return nil
}

func checkOptionalAmount(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return checkAmount(field, *v)
}

// checkDerived reports field as too large when any value computed from it
// overflowed. Inputs close to math.MaxFloat64 are finite but their annual or
// monthly figures are not.
func checkDerived(field string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(field, "value too large", "max", taxcalcerrors.ErrNonFiniteValue)
		}
	}
	return nil
}
