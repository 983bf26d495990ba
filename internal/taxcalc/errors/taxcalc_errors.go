package taxcalcerrors

import (
	"net/http"

	"go-taxcalc/internal/shared/apperror"
)

var (
	ErrNegativeValue = apperror.New(
		apperror.CodeValidationError,
		"value must not be negative",
		http.StatusBadRequest,
	)
	ErrNonFiniteValue = apperror.New(
		apperror.CodeValidationError,
		"value must be a finite number",
		http.StatusBadRequest,
	)
	ErrInvalidFrequency = apperror.New(
		apperror.CodeValidationError,
		"unsupported pay frequency, expected daily, weekly, fortnightly, monthly or yearly",
		http.StatusBadRequest,
	)
	ErrInvalidContributionType = apperror.New(
		apperror.CodeValidationError,
		"unsupported contribution type, expected employee, employer or both",
		http.StatusBadRequest,
	)
	ErrInvalidQualificationLevel = apperror.New(
		apperror.CodeValidationError,
		"unsupported qualification level",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeValidationError,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
)
