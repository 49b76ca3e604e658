package identity

import (
	"context"
	"log/slog"

	dErrors "healthlink/pkg/domain-errors"
)

// Resolver completes a partial Person for a national identifier. The external
// provider is optional; the simulation fallback is only active when
// persistent storage is unconfigured.
type Resolver struct {
	provider  Provider
	simulated *SimulatedProvider
	simulate  bool
	logger    *slog.Logger
}

// NewResolver builds a resolver. provider may be nil when no external lookup
// endpoint is configured; simulate selects the development fallback for
// still-missing fields.
func NewResolver(provider Provider, simulate bool, logger *slog.Logger) *Resolver {
	return &Resolver{
		provider:  provider,
		simulated: NewSimulatedProvider(),
		simulate:  simulate,
		logger:    logger,
	}
}

// Resolve fills the missing fields of known.
//
// Order of precedence: caller-supplied values, then one external lookup (no
// retries; failure degrades instead of aborting), then simulated placeholders
// in simulation mode. In live mode any still-missing field is a validation
// error: the caller must supply complete data.
func (r *Resolver) Resolve(ctx context.Context, nationalID string, known Person) (Person, error) {
	if nationalID == "" {
		return Person{}, dErrors.New(dErrors.CodeBadRequest, "nationalId is required")
	}

	person := known.trimmed()
	if person.Complete() {
		return person, nil
	}

	if r.provider != nil {
		looked, err := r.provider.Lookup(ctx, nationalID)
		if err != nil {
			r.logger.WarnContext(ctx, "identity lookup failed, continuing without it",
				"provider", r.provider.ID(),
				"category", string(GetCategory(err)),
				"error", err,
			)
		} else {
			person = person.Merge(looked)
		}
	}

	if person.Complete() {
		return person, nil
	}

	if !r.simulate {
		return Person{}, dErrors.New(dErrors.CodeBadRequest, "firstName, lastName and email are required")
	}

	placeholder, _ := r.simulated.Lookup(ctx, nationalID)
	return person.Merge(placeholder), nil
}
