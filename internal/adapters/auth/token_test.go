package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTTokens_RoundTrip(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	signed, err := tokens.Issue("u-1", "ada@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "u-1", userID)
}

func TestJWTTokens_WrongSecret(t *testing.T) {
	signed, err := NewJWTTokens("secret-a").Issue("u-1", "ada@example.com", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTTokens("secret-b").Verify(signed)
	require.Error(t, err)
}

func TestJWTTokens_Expired(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	signed, err := tokens.Issue("u-1", "ada@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.Error(t, err)
}

func TestJWTTokens_Garbage(t *testing.T) {
	_, err := NewJWTTokens("test-secret").Verify("not.a.jwt")
	require.Error(t, err)
}
