// Package domain holds the entities shared across services: organizations,
// user accounts, and the enumerations that constrain them.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "healthlink/pkg/domain-errors"
)

// OrganizationType enumerates the kinds of organizations that can sign up.
type OrganizationType string

const (
	OrgTypeHospital         OrganizationType = "hospital"
	OrgTypeInsuranceCompany OrganizationType = "insurance_company"
	OrgTypeGovernmentAgency OrganizationType = "government_agency"
	OrgTypeClinic           OrganizationType = "clinic"
	OrgTypePharmacy         OrganizationType = "pharmacy"
	OrgTypeLaboratory       OrganizationType = "laboratory"
)

// ParseOrganizationType validates and normalizes an organization type.
// "government" is accepted as an alias for government_agency; the seeded
// Ministry of Health record predates the canonical name.
func ParseOrganizationType(s string) (OrganizationType, error) {
	switch OrganizationType(strings.ToLower(strings.TrimSpace(s))) {
	case OrgTypeHospital:
		return OrgTypeHospital, nil
	case OrgTypeInsuranceCompany:
		return OrgTypeInsuranceCompany, nil
	case OrgTypeGovernmentAgency, "government":
		return OrgTypeGovernmentAgency, nil
	case OrgTypeClinic:
		return OrgTypeClinic, nil
	case OrgTypePharmacy:
		return OrgTypePharmacy, nil
	case OrgTypeLaboratory:
		return OrgTypeLaboratory, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown organization type")
	}
}

// Role enumerates account roles. The stored values are the canonical names;
// the signup form historically sent "provider" and "insurer".
type Role string

const (
	RoleAdmin              Role = "admin"
	RoleHospitalStaff      Role = "hospital_staff"
	RoleInsuranceProvider  Role = "insurance_provider"
	RolePatient            Role = "patient"
	RoleGovernmentOfficial Role = "government_official"
)

// ParseRole validates and normalizes a role, mapping the UI aliases to their
// canonical stored names.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleHospitalStaff, "provider":
		return RoleHospitalStaff, nil
	case RoleInsuranceProvider, "insurer":
		return RoleInsuranceProvider, nil
	case RolePatient:
		return RolePatient, nil
	case RoleGovernmentOfficial:
		return RoleGovernmentOfficial, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown role")
	}
}

// Organization is created lazily by the first signup that references its
// name. Name is unique; repeated signups with the same name update the type.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Type      OrganizationType
	CreatedAt time.Time
}

// User is an account belonging to exactly one organization. Email is
// globally unique; NationalID, when present, is globally unique too.
type User struct {
	ID             uuid.UUID
	Email          string
	NationalID     *string
	PasswordHash   string
	FirstName      string
	LastName       string
	Role           Role
	OrganizationID uuid.UUID
	IsActive       bool
	CreatedAt      time.Time
}

// NormalizeEmail trims and lowercases an email address for storage and
// lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
