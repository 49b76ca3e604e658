package identity

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the interface all identity lookup sources implement.
type Provider interface {
	// ID returns a unique identifier for this provider instance.
	ID() string

	// Lookup resolves a national identifier to personal fields. A single
	// call, no retries; failures are normalized into *ProviderError.
	Lookup(ctx context.Context, nationalID string) (Person, error)
}

// ErrorCategory normalizes provider failures.
type ErrorCategory string

const (
	// ErrorTimeout indicates the provider took too long to respond.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the provider returned invalid or malformed data.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorProviderOutage indicates the provider is unreachable or returned
	// a non-2xx status.
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the national identifier is unknown upstream.
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorInternal indicates an unexpected internal error.
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps provider failures with normalized categorization.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Underlying }

// NewProviderError creates a normalized provider error.
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
	}
}

// GetCategory extracts the category from an error, defaulting to internal.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}
