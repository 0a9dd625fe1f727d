package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_VerifiedClaims(t *testing.T) {
	t.Run("It exposes the registered string claims", func(t *testing.T) {
		claims := VerifiedClaims{
			"iss":   "https://issuer.example.com/",
			"sub":   "user-123",
			"azp":   "test-client-id",
			"scope": "openid profile",
		}

		assert.Equal(t, "https://issuer.example.com/", claims.Issuer())
		assert.Equal(t, "user-123", claims.Subject())
		assert.Equal(t, "test-client-id", claims.AuthorizedParty())
		assert.Equal(t, "openid profile", claims.Scope())
	})

	t.Run("It returns empty strings for absent claims", func(t *testing.T) {
		claims := VerifiedClaims{}

		assert.Empty(t, claims.Issuer())
		assert.Empty(t, claims.Subject())
		assert.Empty(t, claims.AuthorizedParty())
		assert.Empty(t, claims.Scope())
	})

	t.Run("It normalizes a single-string audience to a one-element slice", func(t *testing.T) {
		claims := VerifiedClaims{"aud": "test-client-id"}

		assert.Equal(t, []string{"test-client-id"}, claims.Audience())
	})

	t.Run("It normalizes a decoded audience list", func(t *testing.T) {
		claims := VerifiedClaims{"aud": []any{"test-client-id", "other-api"}}

		assert.Equal(t, []string{"test-client-id", "other-api"}, claims.Audience())
	})

	t.Run("It returns nil for a missing audience", func(t *testing.T) {
		claims := VerifiedClaims{}

		assert.Nil(t, claims.Audience())
	})

	t.Run("It skips non-string entries in an audience list", func(t *testing.T) {
		claims := VerifiedClaims{"aud": []any{"test-client-id", 42}}

		assert.Equal(t, []string{"test-client-id"}, claims.Audience())
	})
}
