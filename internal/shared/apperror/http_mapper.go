package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport view of an error, ready for response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// detailer is implemented by errors that carry structured context, such as
// the offending field of a validation failure.
type detailer interface {
	Details() any
}

// ToHTTP maps any error to its HTTP representation. Errors that are not
// AppErrors are reported as INTERNAL_ERROR without leaking their text.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var details any
	var d detailer
	if errors.As(err, &d) {
		details = d.Details()
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		// Prefer the outermost message when the AppError was wrapped by a
		// richer error (e.g. a field-level validation error).
		if _, ok := err.(*AppError); !ok && d != nil {
			message = err.Error()
		}
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: message,
			Details: details,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
