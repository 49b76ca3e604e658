package domain

import (
	"testing"

	dErrors "healthlink/pkg/domain-errors"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"provider", RoleHospitalStaff},
		{"hospital_staff", RoleHospitalStaff},
		{"insurer", RoleInsuranceProvider},
		{"insurance_provider", RoleInsuranceProvider},
		{"patient", RolePatient},
		{"government_official", RoleGovernmentOfficial},
		{" Admin ", RoleAdmin},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseRole(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	_, err := ParseRole("superuser")
	if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad_request for unknown role, got %v", err)
	}
}

func TestParseOrganizationType(t *testing.T) {
	got, err := ParseOrganizationType("government")
	if err != nil {
		t.Fatalf("ParseOrganizationType: %v", err)
	}
	if got != OrgTypeGovernmentAgency {
		t.Fatalf("expected government alias to normalize, got %s", got)
	}

	if _, err := ParseOrganizationType("casino"); !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad_request for unknown type, got %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Admin@Example.COM "); got != "admin@example.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
