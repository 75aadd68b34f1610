package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hirepulse/internal/domain/user"
)

func testAccount() *user.User {
	return &user.User{
		ID:    "11111111-1111-1111-1111-111111111111",
		Email: "jordan@example.com",
		Role:  user.RoleCandidate,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	provider := NewTokenProvider("test-secret", time.Hour)
	token, expiresAt, err := provider.Issue(testAccount())
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := provider.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "jordan@example.com", claims.Email)
	require.Equal(t, user.RoleCandidate, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	provider := NewTokenProvider("test-secret", -time.Minute)
	token, _, err := provider.Issue(testAccount())
	require.NoError(t, err)

	_, err = provider.Verify(token)
	require.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	provider := NewTokenProvider("test-secret", time.Hour)
	token, _, err := provider.Issue(testAccount())
	require.NoError(t, err)

	other := NewTokenProvider("other-secret", time.Hour)
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	provider := NewTokenProvider("test-secret", time.Hour)
	_, err := provider.Verify("not-a-token")
	require.Error(t, err)
}

func TestResetTokenNotValidForAuth(t *testing.T) {
	provider := NewTokenProvider("test-secret", time.Hour)
	token, _, err := provider.IssueReset(testAccount(), 15*time.Minute)
	require.NoError(t, err)

	_, err = provider.Verify(token)
	require.Error(t, err)

	claims, err := provider.VerifyReset(token)
	require.NoError(t, err)
	require.Equal(t, "jordan@example.com", claims.Email)
}

func TestAccessTokenNotValidForReset(t *testing.T) {
	provider := NewTokenProvider("test-secret", time.Hour)
	token, _, err := provider.Issue(testAccount())
	require.NoError(t, err)

	_, err = provider.VerifyReset(token)
	require.Error(t, err)
}
