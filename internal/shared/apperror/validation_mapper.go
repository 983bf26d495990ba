package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldDetails is the details payload attached to field-level input errors.
type FieldDetails struct {
	Field string `json:"field"`
	Rule  string `json:"rule,omitempty"`
}

// formatFieldName turns monthlyIncome or monthly_income into "Monthly Income"
// and includesVAT into "Includes Vat".
func formatFieldName(s string) string {
	var b strings.Builder
	prev := ' '
	for _, r := range s {
		if r == '_' {
			r = ' '
		} else if unicode.IsUpper(r) && prev != ' ' && !unicode.IsUpper(prev) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

type fieldError struct {
	*AppError
	field string
	rule  string
}

func (e *fieldError) Unwrap() error {
	return e.AppError
}

func (e *fieldError) Details() any {
	return FieldDetails{Field: e.field, Rule: e.rule}
}

// FieldError attaches the offending field and rule to err, so the envelope
// reports them under details.
func FieldError(err *AppError, field, rule string) error {
	return &fieldError{AppError: err, field: field, rule: rule}
}

// MapValidationError converts a gin binding error into an AppError that
// names the first offending field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		fieldName := e.Field()
		humanReadableField := formatFieldName(fieldName)

		switch e.Tag() {
		case "required":
			return &fieldError{AppError: RequiredField(humanReadableField), field: fieldName, rule: e.Tag()}
		default:
			return &fieldError{AppError: InvalidField(humanReadableField), field: fieldName, rule: e.Tag()}
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &fieldError{AppError: InvalidField(formatFieldName(typeErr.Field)), field: typeErr.Field, rule: "type"}
	}

	// Errors returned from a json.Unmarshaler carry their own field context.
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
