package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmendes/go-smartcity-services/config"
	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := testTokenIssuer()
	user := testUser(t, "pw")
	user.Role = types.RoleBusinessUser

	signed, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)

	claims, err := issuer.ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Subject)
	assert.Equal(t, types.RoleBusinessUser.String(), claims.Role)
	assert.Equal(t, "go-smartcity-services", claims.Issuer)
}

func TestIssuanceAlwaysProducesDistinctTokens(t *testing.T) {
	issuer := testTokenIssuer()
	user := testUser(t, "pw")

	// Back-to-back issuances land within the same second, where iat/exp
	// alone cannot tell the tokens apart. The jti claim must.
	first, err := issuer.IssueRefreshToken(user)
	require.NoError(t, err)
	second, err := issuer.IssueRefreshToken(user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	a1, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)
	a2, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)
}

func TestAccessTokenExpiry(t *testing.T) {
	issuer := testTokenIssuer()
	user := testUser(t, "pw")

	signed, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	_, err = issuer.ParseAccessToken(signed)
	assert.ErrorIs(t, err, api.ErrInvalidToken)
}

func TestRefreshTokenNotAcceptedAsAccessToken(t *testing.T) {
	issuer := testTokenIssuer()
	user := testUser(t, "pw")

	// Distinct signing secrets: a refresh token must fail access verification.
	refresh, err := issuer.IssueRefreshToken(user)
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, api.ErrMalformedToken)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	issuer := testTokenIssuer()
	other := NewTokenIssuer(config.JWTConfig{
		SecretKey:        "completely-different",
		RefreshSecretKey: "also-different",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		Issuer:           "go-smartcity-services",
		Audience:         "smartcity-api",
	})
	user := testUser(t, "pw")

	signed, err := other.IssueAccessToken(user)
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(signed)
	assert.ErrorIs(t, err, api.ErrMalformedToken)
}

func TestAudienceMismatch(t *testing.T) {
	other := NewTokenIssuer(config.JWTConfig{
		SecretKey:        "test-access-secret",
		RefreshSecretKey: "test-refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		Issuer:           "go-smartcity-services",
		Audience:         "some-other-api",
	})
	user := testUser(t, "pw")

	signed, err := other.IssueAccessToken(user)
	require.NoError(t, err)

	_, err = testTokenIssuer().ParseAccessToken(signed)
	assert.ErrorIs(t, err, api.ErrMalformedToken)
}

func TestParseSubject(t *testing.T) {
	issuer := testTokenIssuer()
	user := testUser(t, "pw")

	t.Run("Valid refresh token", func(t *testing.T) {
		signed, err := issuer.IssueRefreshToken(user)
		require.NoError(t, err)

		subject, err := issuer.ParseSubject(signed)
		require.NoError(t, err)
		assert.Equal(t, "ada", subject)
	})

	t.Run("Access token rejected", func(t *testing.T) {
		signed, err := issuer.IssueAccessToken(user)
		require.NoError(t, err)

		_, err = issuer.ParseSubject(signed)
		assert.ErrorIs(t, err, api.ErrMalformedToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := issuer.ParseSubject("garbage")
		assert.Error(t, err)
	})
}

func TestIsValid(t *testing.T) {
	issuer := testTokenIssuer()
	user := testUser(t, "pw")

	t.Run("Matching subject", func(t *testing.T) {
		signed, err := issuer.IssueRefreshToken(user)
		require.NoError(t, err)
		assert.True(t, issuer.IsValid(signed, user))
	})

	t.Run("Wrong subject", func(t *testing.T) {
		signed, err := issuer.IssueRefreshToken(user)
		require.NoError(t, err)

		imposter := testUser(t, "pw")
		imposter.Username = "grace"
		assert.False(t, issuer.IsValid(signed, imposter))
	})

	t.Run("Expired", func(t *testing.T) {
		signed, err := issuer.IssueRefreshToken(user)
		require.NoError(t, err)

		issuer.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
		assert.False(t, issuer.IsValid(signed, user))
		issuer.now = time.Now
	})
}

func TestExtractRole(t *testing.T) {
	issuer := testTokenIssuer()
	user := testUser(t, "pw")
	user.Role = types.RoleAdmin

	signed, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)

	assert.Equal(t, types.RoleAdmin.String(), issuer.ExtractRole(signed))
	assert.Empty(t, issuer.ExtractRole("garbage"))
}
