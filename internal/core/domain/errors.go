package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates the knowledge base or settings are unusable.
	// Raised once at startup, never mid-session.
	ErrConfiguration = errors.New("configuration error")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The external fallback stage is skipped without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service could not be reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates two vectors of different length were compared.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// Generator Errors.
	//
	// Every kind is treated identically by the resolver: the turn silently
	// degrades to the generic pool.

	// ErrGeneratorDisabled indicates no external generator is configured.
	ErrGeneratorDisabled = errors.New("generator disabled")

	// ErrGeneratorNetwork indicates a transport failure or a provider 5xx.
	ErrGeneratorNetwork = errors.New("generator network error")

	// ErrGeneratorAuth indicates the provider rejected the credentials.
	ErrGeneratorAuth = errors.New("generator authentication error")

	// ErrGeneratorRateLimited indicates the provider or the local throttle refused the call.
	ErrGeneratorRateLimited = errors.New("generator rate limited")

	// ErrGeneratorMalformed indicates the provider reply could not be used.
	ErrGeneratorMalformed = errors.New("generator malformed response")

	// ErrGeneratorTimeout indicates the call exceeded its deadline.
	ErrGeneratorTimeout = errors.New("generator timeout")
)

// ConfigurationError describes why the knowledge base or settings were rejected.
// It wraps ErrConfiguration so callers can test with errors.Is.
type ConfigurationError struct {
	Reason string

	// Cause is the underlying failure, if any.
	Cause error
}

// NewConfigurationError creates a ConfigurationError with the given reason.
func NewConfigurationError(reason string) *ConfigurationError {
	return &ConfigurationError{Reason: reason}
}

// WrapConfigurationError creates a ConfigurationError that also wraps cause.
func WrapConfigurationError(reason string, cause error) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Cause: cause}
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return "configuration error: " + e.Reason + ": " + e.Cause.Error()
	}
	return "configuration error: " + e.Reason
}

// Unwrap returns ErrConfiguration and the cause, when set.
func (e *ConfigurationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConfiguration, e.Cause}
	}
	return []error{ErrConfiguration}
}

// GeneratorStatusError classifies a non-success HTTP status from a
// generation provider. Statuses without a dedicated kind count as network errors.
func GeneratorStatusError(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrGeneratorAuth
	case status == 429:
		return ErrGeneratorRateLimited
	default:
		return ErrGeneratorNetwork
	}
}
