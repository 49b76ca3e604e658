package auth

import "healthlink/internal/domain"

// Claims is the set of user attributes embedded in a session token. Derived
// from a User at sign-in, never persisted server-side; subsequent requests
// reconstruct it from the token alone.
type Claims struct {
	UserID           string                  `json:"id"`
	Email            string                  `json:"email"`
	FirstName        string                  `json:"firstName"`
	LastName         string                  `json:"lastName"`
	Role             domain.Role             `json:"role"`
	OrganizationID   string                  `json:"organizationId,omitempty"`
	OrganizationName string                  `json:"organizationName,omitempty"`
	OrganizationType domain.OrganizationType `json:"organizationType,omitempty"`
}
