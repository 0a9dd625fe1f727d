package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// maxMetadataBytes caps the discovery response body size. Discovery
// documents are small; anything near this limit is not a real provider.
const maxMetadataBytes = 1 * 1024 * 1024

// ProviderMetadata holds the fields of an OIDC discovery document that the
// authenticator consumes. It is immutable once fetched; refreshes replace
// the whole value.
type ProviderMetadata struct {
	Issuer                string   `json:"issuer"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	JWKSURI               string   `json:"jwks_uri"`
	ScopesSupported       []string `json:"scopes_supported"`
	IDTokenSigningAlgs    []string `json:"id_token_signing_alg_values_supported"`
}

// DiscoveryURLFromIssuer returns the well-known discovery URL for the
// passed in issuer URL.
func DiscoveryURLFromIssuer(issuerURL url.URL) string {
	issuerURL.Path = path.Join(issuerURL.Path, ".well-known/openid-configuration")
	return issuerURL.String()
}

// GetProviderMetadata fetches and decodes the discovery document from the
// passed in discovery URL.
func GetProviderMetadata(ctx context.Context, client *http.Client, discoveryURL string) (*ProviderMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request to get provider metadata: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	response, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not get provider metadata from url %s: %w", discoveryURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider metadata endpoint returned status %d, expected 200", response.StatusCode)
	}

	var metadata ProviderMetadata
	if err := json.NewDecoder(io.LimitReader(response.Body, maxMetadataBytes)).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("could not decode json body when getting provider metadata: %w", err)
	}

	if metadata.JWKSURI == "" {
		return nil, fmt.Errorf("provider metadata from %s is missing jwks_uri", discoveryURL)
	}

	return &metadata, nil
}
