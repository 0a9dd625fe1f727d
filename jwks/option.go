package jwks

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/third-party-auth/go-oidc-auth/internal/oidc"
)

// ProviderOption is how options for the Provider are set up.
type ProviderOption func(*Provider) error

// WithDiscoveryURL sets the URL of the provider's openid-configuration
// document, e.g. https://dev-123456.okta.com/.well-known/openid-configuration.
// This is a required option.
func WithDiscoveryURL(discoveryURL string) ProviderOption {
	return func(p *Provider) error {
		if discoveryURL == "" {
			return fmt.Errorf("discovery URL cannot be empty")
		}
		if _, err := url.Parse(discoveryURL); err != nil {
			return fmt.Errorf("invalid discovery URL: %w", err)
		}
		p.DiscoveryURL = discoveryURL
		return nil
	}
}

// WithIssuerURL derives the discovery URL from the issuer URL by appending
// the well-known openid-configuration path. Convenience alternative to
// WithDiscoveryURL for providers that follow the standard layout.
func WithIssuerURL(issuerURL *url.URL) ProviderOption {
	return func(p *Provider) error {
		if issuerURL == nil {
			return fmt.Errorf("issuer URL cannot be nil")
		}
		p.DiscoveryURL = oidc.DiscoveryURLFromIssuer(*issuerURL)
		return nil
	}
}

// WithCustomClient sets a custom HTTP client for the Provider.
// If not specified, a default client with 30s timeout is used.
func WithCustomClient(c *http.Client) ProviderOption {
	return func(p *Provider) error {
		if c == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		p.Client = c
		return nil
	}
}
