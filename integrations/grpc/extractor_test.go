package grpcauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	oidcauth "github.com/third-party-auth/go-oidc-auth"
)

func Test_CredentialFromContext(t *testing.T) {
	withAuthorization := func(values ...string) context.Context {
		md := metadata.MD{"authorization": values}
		return metadata.NewIncomingContext(context.Background(), md)
	}

	t.Run("It returns no credential for a context without metadata", func(t *testing.T) {
		credential, err := CredentialFromContext(context.Background())
		require.NoError(t, err)
		assert.Nil(t, credential)
	})

	t.Run("It returns no credential when the authorization key is absent", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "abc"))

		credential, err := CredentialFromContext(ctx)
		require.NoError(t, err)
		assert.Nil(t, credential)
	})

	t.Run("It extracts the scheme and token", func(t *testing.T) {
		credential, err := CredentialFromContext(withAuthorization("Bearer abc.def.ghi"))
		require.NoError(t, err)
		require.NotNil(t, credential)
		assert.Equal(t, "Bearer", credential.Scheme)
		assert.Equal(t, "abc.def.ghi", credential.Token)
	})

	t.Run("It rejects multiple authorization entries", func(t *testing.T) {
		_, err := CredentialFromContext(withAuthorization("Bearer one", "Bearer two"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMultipleAuthHeaders)
	})

	t.Run("It rejects a malformed authorization value", func(t *testing.T) {
		for _, value := range []string{"Bearer", "Bearer a b", "   "} {
			_, err := CredentialFromContext(withAuthorization(value))
			require.Error(t, err, "value %q should be rejected", value)
			assert.ErrorIs(t, err, ErrInvalidAuthFormat)
		}
	})
}

func Test_statusFromError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{name: "insufficient scope", err: oidcauth.ErrInsufficientScope, want: codes.PermissionDenied},
		{name: "provider unreachable", err: oidcauth.ErrProviderUnreachable, want: codes.Unavailable},
		{name: "credential missing", err: oidcauth.ErrCredentialMissing, want: codes.Unauthenticated},
		{name: "scheme mismatch", err: oidcauth.ErrSchemeMismatch, want: codes.Unauthenticated},
		{name: "key not found", err: oidcauth.ErrKeyNotFound, want: codes.Unauthenticated},
		{name: "token invalid", err: oidcauth.ErrTokenInvalid, want: codes.Unauthenticated},
		{name: "malformed JWKS", err: oidcauth.ErrMalformedJWKS, want: codes.Unauthenticated},
		{name: "identity construction", err: oidcauth.ErrIdentityConstruction, want: codes.Unauthenticated},
		{name: "multiple auth headers", err: ErrMultipleAuthHeaders, want: codes.Unauthenticated},
		{name: "invalid auth format", err: ErrInvalidAuthFormat, want: codes.Unauthenticated},
		{name: "anything else", err: assert.AnError, want: codes.Internal},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, status.Code(statusFromError(testCase.err)))
		})
	}
}
