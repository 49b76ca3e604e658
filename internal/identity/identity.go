// Package identity resolves a national identifier to personal details. A
// resolver merges caller-supplied fields with an optional external lookup
// provider and, in simulation mode, deterministic placeholder data.
package identity

import "strings"

// Person is the set of personal fields the resolver completes.
type Person struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Complete reports whether every field is filled in.
func (p Person) Complete() bool {
	return p.FirstName != "" && p.LastName != "" && p.Email != ""
}

// Merge fills the empty fields of p from other. Caller-supplied values always
// win over lookup responses.
func (p Person) Merge(other Person) Person {
	if p.FirstName == "" {
		p.FirstName = other.FirstName
	}
	if p.LastName == "" {
		p.LastName = other.LastName
	}
	if p.Email == "" {
		p.Email = other.Email
	}
	return p
}

func (p Person) trimmed() Person {
	return Person{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
	}
}
