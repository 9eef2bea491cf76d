package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies application errors so transport layers can map them
// to status codes and realtime error events without string matching.
type Kind int

const (
	KindValidation Kind = iota
	KindAccessDenied
	KindNotFound
	KindAuthentication
	KindConflict
	KindInternal
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
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

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(KindValidation, message)
}

func AccessDenied(message string) *AppError {
	return New(KindAccessDenied, message)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Authentication(message string) *AppError {
	return New(KindAuthentication, message)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
