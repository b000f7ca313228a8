package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerify_RoundTrip(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	token, err := svc.Generate(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerify_Expired(t *testing.T) {
	svc := New("test-secret-123", -time.Minute)

	token, err := svc.Generate(42)
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	_, err := svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	token, err := issuer.Generate(7)
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
