package oidcauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/third-party-auth/go-oidc-auth/validator"
)

func Test_NewIDToken(t *testing.T) {
	fullClaims := func() validator.VerifiedClaims {
		return validator.VerifiedClaims{
			"iss":                "https://issuer.example.com/",
			"sub":                "user-123",
			"aud":                "test-client-id",
			"exp":                float64(1756500000),
			"iat":                float64(1756496400),
			"azp":                "test-client-id",
			"scope":              "openid profile email",
			"email":              "jane@example.com",
			"email_verified":     true,
			"name":               "Jane Doe",
			"preferred_username": "jane",
		}
	}

	t.Run("It builds a full record from verified claims", func(t *testing.T) {
		identity, err := NewIDToken(fullClaims())
		require.NoError(t, err)

		idToken, ok := identity.(*IDToken)
		require.True(t, ok, "expected *IDToken, got %T", identity)

		assert.Equal(t, "https://issuer.example.com/", idToken.Issuer)
		assert.Equal(t, "user-123", idToken.Subject)
		assert.Equal(t, []string{"test-client-id"}, idToken.Audience)
		assert.Equal(t, int64(1756500000), idToken.Expiry)
		assert.Equal(t, int64(1756496400), idToken.IssuedAt)
		assert.Equal(t, "test-client-id", idToken.AuthorizedParty)
		assert.Equal(t, "openid profile email", idToken.Scope)
		assert.Equal(t, "jane@example.com", idToken.Email)
		assert.True(t, idToken.EmailVerified)
		assert.Equal(t, "Jane Doe", idToken.Name)
		assert.Equal(t, "jane", idToken.PreferredUsername)
	})

	t.Run("It retains the full claim map for provider-specific fields", func(t *testing.T) {
		claims := fullClaims()
		claims["https://example.com/tenant"] = "acme"

		identity, err := NewIDToken(claims)
		require.NoError(t, err)

		idToken := identity.(*IDToken)
		assert.Equal(t, "acme", idToken.Claims["https://example.com/tenant"])
	})

	t.Run("It fails when a required claim is missing", func(t *testing.T) {
		for _, required := range []string{"iss", "sub", "aud", "exp", "iat"} {
			claims := fullClaims()
			delete(claims, required)

			_, err := NewIDToken(claims)
			require.Error(t, err, "missing %q should fail", required)
			assert.Contains(t, err.Error(), required)
		}
	})

	t.Run("It fails when a timestamp claim is not numeric", func(t *testing.T) {
		claims := fullClaims()
		claims["exp"] = "not-a-number"

		_, err := NewIDToken(claims)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exp")
	})

	t.Run("It leaves the optional profile fields empty when absent", func(t *testing.T) {
		identity, err := NewIDToken(validator.VerifiedClaims{
			"iss": "https://issuer.example.com/",
			"sub": "user-123",
			"aud": "test-client-id",
			"exp": float64(1756500000),
			"iat": float64(1756496400),
		})
		require.NoError(t, err)

		idToken := identity.(*IDToken)
		assert.Empty(t, idToken.Email)
		assert.False(t, idToken.EmailVerified)
		assert.Empty(t, idToken.Name)
		assert.Empty(t, idToken.AuthorizedParty)
	})
}
