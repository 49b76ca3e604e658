package identity

import "context"

const (
	simulatedProviderID = "simulated"

	// SimulatedFirstName is the fixed placeholder first name used when no
	// real lookup source is available.
	SimulatedFirstName = "John"
)

// SimulatedProvider derives deterministic placeholder values from the
// national identifier itself. Used in development when no external lookup
// endpoint is configured.
type SimulatedProvider struct{}

func NewSimulatedProvider() *SimulatedProvider { return &SimulatedProvider{} }

func (p *SimulatedProvider) ID() string { return simulatedProviderID }

func (p *SimulatedProvider) Lookup(_ context.Context, nationalID string) (Person, error) {
	return Person{
		FirstName: SimulatedFirstName,
		LastName:  "Citizen-" + lastN(nationalID, 4),
		Email:     "user+" + lastN(nationalID, 6) + "@example.com",
	}, nil
}

// lastN returns the last n characters of s, or all of s when shorter.
func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
