package oidcauth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// config collects construction-time settings for the Authenticator.
// All of it is immutable once New returns.
type config struct {
	discoveryURL    string
	issuer          string
	clientID        string
	scopes          []string
	cacheTTL        time.Duration
	clockSkew       time.Duration
	httpClient      *http.Client
	identityFactory IdentityFactory
	logger          Logger
	metrics         Metrics
	tracer          oteltrace.Tracer
}

// Option configures the Authenticator.
// Options return errors to enable validation during construction.
type Option func(*config) error

// WithDiscoveryURL sets the URL of the provider's openid-configuration
// document, e.g. https://dev-123456.okta.com/.well-known/openid-configuration.
// This is a required option.
func WithDiscoveryURL(discoveryURL string) Option {
	return func(c *config) error {
		if discoveryURL == "" {
			return errors.New("discovery URL cannot be empty")
		}
		if _, err := url.Parse(discoveryURL); err != nil {
			return fmt.Errorf("invalid discovery URL: %w", err)
		}
		c.discoveryURL = discoveryURL
		return nil
	}
}

// WithIssuer sets the issuer every token's iss claim must equal exactly.
// When not supplied, issuer verification is skipped.
func WithIssuer(issuer string) Option {
	return func(c *config) error {
		if issuer == "" {
			return errors.New("issuer cannot be empty")
		}
		c.issuer = issuer
		return nil
	}
}

// WithClientID sets the client identifier that must appear in every
// token's aud claim. When not supplied, audience verification is skipped.
func WithClientID(clientID string) Option {
	return func(c *config) error {
		if clientID == "" {
			return errors.New("client ID cannot be empty")
		}
		c.clientID = clientID
		return nil
	}
}

// WithScopes sets the statically required scopes. They are merged with any
// scopes the endpoint declares per call; every token must cover the union.
func WithScopes(scopes ...string) Option {
	return func(c *config) error {
		for i, scope := range scopes {
			if scope == "" {
				return fmt.Errorf("scope at index %d cannot be empty", i)
			}
		}
		c.scopes = scopes
		return nil
	}
}

// WithCacheTTL sets how long the provider's metadata and key set are
// cached before a read triggers a synchronous refetch.
//
// Default: 1 hour.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) error {
		if ttl <= 0 {
			return errors.New("cache TTL must be positive")
		}
		c.cacheTTL = ttl
		return nil
	}
}

// WithAllowedClockSkew sets the tolerance applied to the expiry check to
// account for clock differences between systems.
//
// Default: 0 (no skew allowed).
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(c *config) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		c.clockSkew = skew
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client used for the discovery and
// JWKS fetches. If not specified, a default client with a 30s timeout is
// used.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) error {
		if client == nil {
			return errors.New("HTTP client cannot be nil")
		}
		c.httpClient = client
		return nil
	}
}

// WithIdentityFactory sets the factory that builds the caller's identity
// record from verified claims.
//
// Default: NewIDToken.
func WithIdentityFactory(factory IdentityFactory) Option {
	return func(c *config) error {
		if factory == nil {
			return errors.New("identity factory cannot be nil")
		}
		c.identityFactory = factory
		return nil
	}
}

// WithLogger sets an optional logger for the Authenticator.
// The interface is compatible with log/slog.Logger; adapters for logrus,
// zap and zerolog are provided.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics sets an optional metrics sink for the Authenticator.
//
// Default: NoopMetrics.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		if metrics == nil {
			return errors.New("metrics cannot be nil")
		}
		c.metrics = metrics
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer used for authentication spans.
// If not specified, the globally registered tracer provider is used.
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(c *config) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		c.tracer = tracer
		return nil
	}
}
