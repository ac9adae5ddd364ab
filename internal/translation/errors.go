package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Request-level failures. Per-engine failures never cross the comparator
// boundary; only these do.
var (
	// ErrAllEnginesFailed is returned when a compare call yields zero successes.
	ErrAllEnginesFailed = errors.New("all translation engines failed")
	// ErrLanguageDetection is returned when source language is "auto" and
	// detection fails. The request is rejected, never silently defaulted.
	ErrLanguageDetection = errors.New("language detection failed")
	// ErrRequestCancelled is returned on caller-initiated cancellation,
	// overriding any partial engine results.
	ErrRequestCancelled = errors.New("translation request cancelled")
)

// ValidationError rejects a request before any engine call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnknownEngineError reports a request for an engine that is not registered
// or not enabled.
type UnknownEngineError struct {
	EngineID  string
	Available []string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("translation engine %q is not registered (available: %s)",
		e.EngineID, strings.Join(e.Available, ", "))
}

// ErrorKind classifies a provider failure.
type ErrorKind string

const (
	ErrorKindAuth            ErrorKind = "auth"
	ErrorKindRateLimit       ErrorKind = "rate_limit"
	ErrorKindUnsupportedPair ErrorKind = "unsupported_language_pair"
	ErrorKindTimeout         ErrorKind = "timeout"
	ErrorKindProvider        ErrorKind = "provider"
)

// EngineError is a failure scoped to one engine. In compare mode it is
// recorded in the errors map; in single-engine mode it surfaces directly.
type EngineError struct {
	EngineID string
	Kind     ErrorKind
	Cause    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s: %s: %v", e.EngineID, e.Kind, e.Cause)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the failure was a per-engine timeout.
func (e *EngineError) Timeout() bool {
	return e.Kind == ErrorKindTimeout
}

func newEngineError(engineID string, kind ErrorKind, cause error) *EngineError {
	return &EngineError{EngineID: engineID, Kind: kind, Cause: cause}
}

// classifyStatus maps an HTTP status from a provider API to an ErrorKind.
func classifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorKindAuth
	case http.StatusTooManyRequests:
		return ErrorKindRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrorKindTimeout
	default:
		return ErrorKindProvider
	}
}

// classifyTransportError folds context errors into the timeout kind so the
// executor can treat provider-side and deadline-side timeouts uniformly.
func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTimeout
	}
	return ErrorKindProvider
}
