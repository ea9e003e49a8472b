package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestHMACVerifier_RoundTrip(t *testing.T) {
	verifier := NewHMACVerifier("test-secret")
	identity := Identity{CustomerID: uuid.New(), Role: RoleAdmin}

	token := verifier.Sign(identity)
	resolved, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, identity, resolved)
	require.True(t, resolved.IsAdmin())
}

func TestHMACVerifier_RejectsForgedToken(t *testing.T) {
	verifier := NewHMACVerifier("test-secret")
	forger := NewHMACVerifier("other-secret")
	identity := Identity{CustomerID: uuid.New(), Role: RoleCustomer}

	_, err := verifier.Verify(context.Background(), forger.Sign(identity))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHMACVerifier_RejectsMalformedTokens(t *testing.T) {
	verifier := NewHMACVerifier("test-secret")
	for _, token := range []string{"", "no-dot", "a.b", "!!!.???"} {
		_, err := verifier.Verify(context.Background(), token)
		require.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestHMACVerifier_RejectsUnknownRole(t *testing.T) {
	verifier := NewHMACVerifier("test-secret")
	token := verifier.Sign(Identity{CustomerID: uuid.New(), Role: Role("root")})

	_, err := verifier.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestStaticVerifier(t *testing.T) {
	identity := Identity{CustomerID: uuid.New(), Role: RoleCustomer}
	verifier := NewStaticVerifier(map[string]Identity{"token-1": identity})

	resolved, err := verifier.Verify(context.Background(), "token-1")
	require.NoError(t, err)
	require.Equal(t, identity, resolved)

	_, err = verifier.Verify(context.Background(), "token-2")
	require.ErrorIs(t, err, ErrInvalidToken)
}
