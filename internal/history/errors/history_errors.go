package historyerrors

import (
	"net/http"

	"go-taxcalc/internal/shared/apperror"
)

var (
	ErrInvalidCalculationType = apperror.New(
		apperror.CodeValidationError,
		"calculationType must be one of PAYE, VAT, NIS or SALARY",
		http.StatusBadRequest,
	)
	ErrInvalidInputData = apperror.New(
		apperror.CodeValidationError,
		"inputData must be a JSON object",
		http.StatusBadRequest,
	)
	ErrInvalidResult = apperror.New(
		apperror.CodeValidationError,
		"result must be a JSON object",
		http.StatusBadRequest,
	)
	ErrInvalidLimit = apperror.New(
		apperror.CodeValidationError,
		"limit must be between 1 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid user ID",
		http.StatusUnauthorized,
	)
	ErrDuplicateCalculation = apperror.New(
		apperror.CodeConflict,
		"Calculation already saved",
		http.StatusConflict,
	)
)
