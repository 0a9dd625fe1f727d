package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DiscoveryURLFromIssuer(t *testing.T) {
	testCases := []struct {
		name   string
		issuer string
		want   string
	}{
		{
			name:   "bare issuer",
			issuer: "https://issuer.example.com",
			want:   "https://issuer.example.com/.well-known/openid-configuration",
		},
		{
			name:   "issuer with trailing slash",
			issuer: "https://issuer.example.com/",
			want:   "https://issuer.example.com/.well-known/openid-configuration",
		},
		{
			name:   "issuer with path",
			issuer: "https://issuer.example.com/realms/acme",
			want:   "https://issuer.example.com/realms/acme/.well-known/openid-configuration",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			issuerURL, err := url.Parse(testCase.issuer)
			require.NoError(t, err)

			assert.Equal(t, testCase.want, DiscoveryURLFromIssuer(*issuerURL))
		})
	}
}

func Test_GetProviderMetadata(t *testing.T) {
	t.Run("It decodes every field the authenticator consumes", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			metadata := ProviderMetadata{
				Issuer:                server.URL,
				AuthorizationEndpoint: server.URL + "/authorize",
				TokenEndpoint:         server.URL + "/oauth/token",
				JWKSURI:               server.URL + "/.well-known/jwks.json",
				ScopesSupported:       []string{"openid", "profile", "email"},
				IDTokenSigningAlgs:    []string{"RS256", "ES256"},
			}
			require.NoError(t, json.NewEncoder(w).Encode(metadata))
		}))
		defer server.Close()

		got, err := GetProviderMetadata(context.Background(), server.Client(), server.URL)
		require.NoError(t, err)

		want := &ProviderMetadata{
			Issuer:                server.URL,
			AuthorizationEndpoint: server.URL + "/authorize",
			TokenEndpoint:         server.URL + "/oauth/token",
			JWKSURI:               server.URL + "/.well-known/jwks.json",
			ScopesSupported:       []string{"openid", "profile", "email"},
			IDTokenSigningAlgs:    []string{"RS256", "ES256"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("provider metadata mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("It errors on a non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := GetProviderMetadata(context.Background(), server.Client(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "returned status 404")
	})

	t.Run("It errors when the body is not valid JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not a discovery document</html>"))
		}))
		defer server.Close()

		_, err := GetProviderMetadata(context.Background(), server.Client(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not decode json body")
	})

	t.Run("It errors when the document has no jwks_uri", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"issuer":"https://issuer.example.com"}`))
		}))
		defer server.Close()

		_, err := GetProviderMetadata(context.Background(), server.Client(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing jwks_uri")
	})

	t.Run("It errors when the server cannot be reached", func(t *testing.T) {
		_, err := GetProviderMetadata(
			context.Background(),
			&http.Client{},
			"http://invalid-host-that-does-not-exist-12345.com",
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not get provider metadata")
	})
}
