package apperror

import "fmt"

// AppError couples a stable machine code and an HTTP status to a message safe
// to show clients. Err, when set, keeps the underlying cause reachable for
// errors.Is/As without leaking it into responses.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a standalone AppError, typically a package-level sentinel.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches code, message and status to an underlying error. A nil err
// yields nil so call sites can wrap unconditionally.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}
