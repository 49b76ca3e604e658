package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthlink/internal/auth"
	"healthlink/internal/domain"
	dErrors "healthlink/pkg/domain-errors"
)

var sessionClaims = auth.Claims{
	UserID:           "8e7b39c2-58ff-4899-b610-4b8e64f91a2a",
	Email:            "alice@example.com",
	FirstName:        "Alice",
	LastName:         "Umutoni",
	Role:             domain.RoleHospitalStaff,
	OrganizationID:   "1f0a8a9e-20c4-4b49-8f3f-91a4cf7d61e3",
	OrganizationName: "Test Clinic",
	OrganizationType: domain.OrgTypeHospital,
}

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)

	tokenString, err := svc.Issue(sessionClaims)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := svc.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, sessionClaims, got)
}

func TestValidateInvalidToken(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)

	_, err := svc.Validate("not-a-token")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", -time.Hour)

	tokenString, err := svc.Issue(sessionClaims)
	require.NoError(t, err)

	_, err = svc.Validate(tokenString)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func TestValidateWrongKey(t *testing.T) {
	tokenString, err := NewService("key-one", time.Hour).Issue(sessionClaims)
	require.NoError(t, err)

	_, err = NewService("key-two", time.Hour).Validate(tokenString)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}
