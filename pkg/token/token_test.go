package token

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret")

	signed, err := m.Sign(Identity{Username: "alice"})
	require.NoError(t, err)

	identity, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := NewManager("right-secret").Sign(Identity{Username: "alice"})
	require.NoError(t, err)

	_, err = NewManager("wrong-secret").Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret")

	signed, err := m.Sign(Identity{Username: "alice"})
	require.NoError(t, err)

	// Swap the payload segment for one claiming a different user. The
	// signature no longer matches, so verification must fail.
	forged, err := NewManager("super-secret").Sign(Identity{Username: "bob"})
	require.NoError(t, err)

	orig, swap := strings.Split(signed, "."), strings.Split(forged, ".")
	tampered := orig[0] + "." + swap[1] + "." + orig[2]

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret")

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_MissingUsernameClaim(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).
		SignedString(secret)
	require.NoError(t, err)

	_, err = NewManager("super-secret").Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsUnsignedAlgorithm(t *testing.T) {
	t.Parallel()

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"username": "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("super-secret").Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
