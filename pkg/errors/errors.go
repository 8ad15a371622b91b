// Package errors defines the aligner's error taxonomy. Each failure category
// maps to a distinct process exit code so that pipeline drivers can tell a
// pairing failure from a degenerate document without parsing log output.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrLabelMismatch   = errors.New("token and url streams out of step")
	ErrEmptyVocab      = errors.New("document has an empty vocabulary")
	ErrEmptyWordVec    = errors.New("document transformed to an empty word vector")
	ErrSourceExhausted = errors.New("document source exhausted")
	ErrInternal        = errors.New("internal error")
)

// Exit codes reported at the process boundary.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitRefPairing   = 2
	ExitCandPairing  = 3
	ExitEmptyVocab   = 4
	ExitEmptyWordVec = 5
	ExitInternal     = 6
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps an error to the process exit status for its category.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return ExitUsage
	case errors.Is(err, ErrLabelMismatch):
		return ExitCandPairing
	case errors.Is(err, ErrEmptyVocab):
		return ExitEmptyVocab
	case errors.Is(err, ErrEmptyWordVec):
		return ExitEmptyWordVec
	default:
		return ExitInternal
	}
}

// Is, As and Unwrap re-exports so callers need only this package.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
