package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "healthlink/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "expected cost-10 bcrypt hash, got %s", hash)

	require.NoError(t, Verify("secret123", hash))

	err = Verify("wrong", hash)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := Hash("")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeInvalidInput, "password cannot be empty"))
}

func TestHashTooLong(t *testing.T) {
	_, err := Hash(strings.Repeat("a", 100))
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeInvalidInput, "password is too long"))
}
