package oidcauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/third-party-auth/go-oidc-auth/jwks"
	"github.com/third-party-auth/go-oidc-auth/validator"
)

// Authenticator verifies OIDC bearer tokens against the configured
// provider and enforces scope requirements. It is safe for concurrent use;
// the only shared mutable state is the provider metadata cache.
//
// The two entry points differ only in how an absent credential is treated:
// AuthenticateRequired rejects it, AuthenticateOptional returns no
// identity. A credential that is present but invalid is rejected by both.
type Authenticator struct {
	provider        *jwks.CachingProvider
	validator       *validator.Validator
	scopes          []string
	identityFactory IdentityFactory
	logger          Logger
	metrics         Metrics
	tracer          oteltrace.Tracer
}

// New constructs an Authenticator from the supplied options.
// WithDiscoveryURL is required; everything else has a default.
func New(opts ...Option) (*Authenticator, error) {
	cfg := &config{
		cacheTTL:        time.Hour,
		identityFactory: NewIDToken,
		metrics:         &NoopMetrics{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if cfg.discoveryURL == "" {
		return nil, errors.New("discovery URL is required (use WithDiscoveryURL)")
	}

	providerOpts := []jwks.ProviderOption{jwks.WithDiscoveryURL(cfg.discoveryURL)}
	if cfg.httpClient != nil {
		providerOpts = append(providerOpts, jwks.WithCustomClient(cfg.httpClient))
	}
	provider, err := jwks.NewCachingProvider(cfg.cacheTTL, providerOpts...)
	if err != nil {
		return nil, err
	}

	var validatorOpts []validator.Option
	if cfg.issuer != "" {
		validatorOpts = append(validatorOpts, validator.WithIssuer(cfg.issuer))
	}
	if cfg.clientID != "" {
		validatorOpts = append(validatorOpts, validator.WithAudience(cfg.clientID))
	}
	if cfg.clockSkew > 0 {
		validatorOpts = append(validatorOpts, validator.WithAllowedClockSkew(cfg.clockSkew))
	}
	tokenValidator, err := validator.New(validatorOpts...)
	if err != nil {
		return nil, err
	}

	tracer := cfg.tracer
	if tracer == nil {
		tracer = defaultTracer()
	}

	return &Authenticator{
		provider:        provider,
		validator:       tokenValidator,
		scopes:          cfg.scopes,
		identityFactory: cfg.identityFactory,
		logger:          cfg.logger,
		metrics:         cfg.metrics,
		tracer:          tracer,
	}, nil
}

// AuthenticateRequired validates the credential and returns the identity
// built from its claims. It fails when the credential is absent, carries a
// non-bearer scheme, the provider cannot be reached, the signing key is
// unknown, any claim check fails, or the token lacks a required scope.
//
// The passed in scopes are merged with the statically configured ones.
func (a *Authenticator) AuthenticateRequired(ctx context.Context, credential *Credential, scopes ...string) (any, error) {
	return a.authenticate(ctx, credential, scopes, false)
}

// AuthenticateOptional behaves like AuthenticateRequired except that an
// absent credential or a non-bearer scheme yields (nil, nil) instead of an
// error. A credential that is present and malformed, expired, or otherwise
// invalid is still rejected: only the absence of a token is tolerated.
func (a *Authenticator) AuthenticateOptional(ctx context.Context, credential *Credential, scopes ...string) (any, error) {
	return a.authenticate(ctx, credential, scopes, true)
}

func (a *Authenticator) authenticate(
	ctx context.Context,
	credential *Credential,
	perCallScopes []string,
	optional bool,
) (identity any, err error) {
	required := mergeScopes(a.scopes, perCallScopes)

	ctx, span := a.tracer.Start(ctx, "oidcauth.authenticate",
		oteltrace.WithAttributes(spanScopeAttributes(required)))
	defer func() { endSpan(span, err) }()

	start := time.Now()

	if credential == nil || credential.Token == "" {
		if optional {
			if a.logger != nil {
				a.logger.Debug("no credential provided, continuing without identity")
			}
			return nil, nil
		}
		if a.logger != nil {
			a.logger.Warn("no credential provided and credentials are required")
		}
		a.observe(start, "missing_credential")
		return nil, ErrCredentialMissing
	}

	if !credential.SchemeIsBearer() {
		if optional {
			if a.logger != nil {
				a.logger.Debug("non-bearer credential provided, continuing without identity",
					"scheme", credential.Scheme)
			}
			return nil, nil
		}
		a.observe(start, "scheme_mismatch")
		return nil, fmt.Errorf("%w: got %q", ErrSchemeMismatch, credential.Scheme)
	}

	snapshot, err := a.provider.Snapshot(ctx)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("could not get provider metadata", "error", err)
		}
		a.observe(start, "provider_error")
		return nil, err
	}

	claims, err := a.validator.ValidateToken(ctx, credential.Token, snapshot.Keys, snapshot.Metadata.IDTokenSigningAlgs)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("token validation failed", "error", err, "duration", time.Since(start))
		}
		if errors.Is(err, ErrKeyNotFound) {
			a.observe(start, "key_not_found")
		} else {
			a.observe(start, "token_invalid")
		}
		return nil, err
	}

	if err := CheckScopes(claims.Scope(), required); err != nil {
		if a.logger != nil {
			a.logger.Warn("scope check failed", "error", err)
		}
		a.observe(start, "insufficient_scope")
		return nil, err
	}

	identity, err = a.identityFactory(claims)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("identity construction failed", "error", err)
		}
		a.observe(start, "identity_error")
		return nil, fmt.Errorf("%w: %v", ErrIdentityConstruction, err)
	}

	if a.logger != nil {
		a.logger.Debug("authentication successful",
			"subject", claims.Subject(), "duration", time.Since(start))
	}
	a.observe(start, "ok")

	return identity, nil
}

func (a *Authenticator) observe(start time.Time, result string) {
	tags := map[string]string{"result": result}
	a.metrics.IncCounter(metricAuthentications, tags)
	a.metrics.ObserveHistogram(metricAuthDuration, time.Since(start).Seconds(), tags)
}
