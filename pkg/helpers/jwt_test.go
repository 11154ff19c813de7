package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundtrip(t *testing.T) {
	m := &JWTManager{Secret: []byte("test-secret"), TTL: 10 * time.Hour}

	token, expiresAt, err := m.Generate("alice@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Hour), expiresAt, time.Minute)

	identity, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity)
}

func TestJWTExpired(t *testing.T) {
	m := &JWTManager{Secret: []byte("test-secret"), TTL: -time.Minute}

	token, _, err := m.Generate("alice@example.com")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTTamperedSignature(t *testing.T) {
	m := &JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}

	token, _, err := m.Generate("alice@example.com")
	require.NoError(t, err)

	// Flip the last character of the signature.
	last := token[len(token)-1]
	swap := byte('A')
	if last == 'A' {
		swap = 'B'
	}
	tampered := token[:len(token)-1] + string(swap)

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTWrongSecret(t *testing.T) {
	a := &JWTManager{Secret: []byte("secret-a"), TTL: time.Hour}
	b := &JWTManager{Secret: []byte("secret-b"), TTL: time.Hour}

	token, _, err := a.Generate("alice@example.com")
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTGarbage(t *testing.T) {
	m := &JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
