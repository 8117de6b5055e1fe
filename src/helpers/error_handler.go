package helpers

import (
	"errors"
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Sentinels for errors.Is
// -----------------------------------------------------------------------------

var (
	ErrNotFound        = errors.New("not found")
	ErrIncompleteData  = errors.New("incomplete data")
	ErrEmptyResult     = errors.New("empty result")
	ErrProviderFailure = errors.New("provider failure")
	ErrValidation      = errors.New("validation failed")
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type StockLensError struct {
	Message string
	Cause   error
}

func (e *StockLensError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StockLensError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// NotFoundError reports that no candidate symbol or statement row matched.
// Candidates is set when symbol resolution was exhausted.
type NotFoundError struct {
	StockLensError
	Candidates []string
}

func NewNotFoundError(message string, candidates []string) *NotFoundError {
	return &NotFoundError{
		StockLensError: StockLensError{Message: message, Cause: ErrNotFound},
		Candidates:     candidates,
	}
}

// UserMessage enumerates every candidate tried, for display.
func (e *NotFoundError) UserMessage() string {
	if len(e.Candidates) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (tried: %s)", e.Message, strings.Join(e.Candidates, ", "))
}

// -----------------------------------------------------------------------------

// IncompleteDataError reports required fields absent from a response.
type IncompleteDataError struct {
	StockLensError
	Missing []string
}

func NewIncompleteDataError(symbol string, missing []string) *IncompleteDataError {
	return &IncompleteDataError{
		StockLensError: StockLensError{
			Message: fmt.Sprintf("%s: missing fields %s", symbol, strings.Join(missing, ",")),
			Cause:   ErrIncompleteData,
		},
		Missing: missing,
	}
}

// -----------------------------------------------------------------------------

// EmptyResultError reports data that was present but empty after cleaning.
type EmptyResultError struct{ StockLensError }

func NewEmptyResultError(symbol string) *EmptyResultError {
	return &EmptyResultError{StockLensError{
		Message: fmt.Sprintf("%s: no usable rows", symbol),
		Cause:   ErrEmptyResult,
	}}
}

// -----------------------------------------------------------------------------

// ProviderFailure wraps a transport or provider-side error.
type ProviderFailure struct {
	Provider string
	Op       string
	Symbol   string
	Err      error
}

func NewProviderFailure(provider, op, symbol string, err error) *ProviderFailure {
	return &ProviderFailure{Provider: provider, Op: op, Symbol: symbol, Err: err}
}

func (e *ProviderFailure) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Provider, e.Op, e.Symbol, e.Err)
}

func (e *ProviderFailure) Unwrap() error {
	return e.Err
}

func (e *ProviderFailure) Is(target error) bool {
	return target == ErrProviderFailure
}

// -----------------------------------------------------------------------------

type ValidationError struct{ StockLensError }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{StockLensError{Message: message, Cause: ErrValidation}}
}

type ConfigurationError struct{ StockLensError }

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{StockLensError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

// Describe renders any taxonomy error for the user-facing payload.
func Describe(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.UserMessage()
	}
	return err.Error()
}
