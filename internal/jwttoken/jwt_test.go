package jwttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "contacthub/pkg/domain-errors"
)

const testKey = "unit-test-signing-key"

func newService(ttl time.Duration) *Service {
	return New(testKey, "contacthub", ttl)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(15 * time.Minute)
	userID := uuid.New()

	token, err := svc.Generate(userID, "alice", "alice@example.com", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "jti must be set for revocation")

	subject, err := claims.Subject()
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newService(time.Minute)
	// Issue in the past so the token is already expired.
	token, err := svc.Generate(uuid.New(), "bob", "bob@example.com", time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateWrongKey(t *testing.T) {
	token, err := newService(time.Minute).Generate(uuid.New(), "bob", "bob@example.com", time.Now())
	require.NoError(t, err)

	other := New("a-different-key", "contacthub", time.Minute)
	_, err = other.Validate(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateGarbage(t *testing.T) {
	svc := newService(time.Minute)
	for _, tok := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := svc.Validate(tok)
		require.Error(t, err, tok)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	}
}

func TestSubjectRejectsMalformedID(t *testing.T) {
	claims := &Claims{UserID: "not-a-uuid"}
	_, err := claims.Subject()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	claims = &Claims{UserID: uuid.Nil.String()}
	_, err = claims.Subject()
	require.Error(t, err)
}
