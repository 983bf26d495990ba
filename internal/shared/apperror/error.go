package apperror

import "fmt"

// AppError is an error that knows how it is reported to clients. Package
// level values created with New act as sentinels for errors.Is.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error

	sentinel *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel e was derived from via WithCause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.root() == t.root()
}

// WithCause returns a copy of e that wraps err. The copy still matches e
// under errors.Is, and clients see only e's code and message.
func (e *AppError) WithCause(err error) *AppError {
	if err == nil {
		return e
	}
	cp := *e
	cp.Err = err
	cp.sentinel = e.root()
	return &cp
}

func (e *AppError) root() *AppError {
	if e.sentinel != nil {
		return e.sentinel
	}
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError around err. It returns nil for a nil err.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
