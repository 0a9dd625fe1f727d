package oidcauth

import (
	"errors"

	"github.com/third-party-auth/go-oidc-auth/jwks"
	"github.com/third-party-auth/go-oidc-auth/validator"
)

var (
	// ErrCredentialMissing is returned by AuthenticateRequired when no
	// bearer credential was supplied with the request.
	ErrCredentialMissing = errors.New("missing bearer credential")

	// ErrSchemeMismatch is returned when a credential was supplied but
	// its scheme is not "bearer" (compared case-insensitively).
	ErrSchemeMismatch = errors.New("authorization scheme must be bearer")

	// ErrInsufficientScope is returned when the scopes required by the
	// endpoint are not a subset of the scopes granted to the token.
	ErrInsufficientScope = errors.New("insufficient scope")

	// ErrIdentityConstruction is returned when the verified claims are
	// missing a field the identity record requires.
	ErrIdentityConstruction = errors.New("could not construct identity from claims")
)

// Aliases for the error kinds produced below the orchestrator, so callers
// can match every authentication failure against this package alone.
var (
	// ErrProviderUnreachable is returned when the authorization server
	// cannot be reached during a metadata or key-set refresh.
	ErrProviderUnreachable = jwks.ErrProviderUnreachable

	// ErrMalformedJWKS is returned when the provider serves a key-set
	// document that cannot be parsed.
	ErrMalformedJWKS = jwks.ErrMalformedJWKS

	// ErrKeyNotFound is returned when no key in the provider's key set
	// matches the token's key id.
	ErrKeyNotFound = validator.ErrKeyNotFound

	// ErrTokenInvalid is the collapsed kind for every signature, expiry,
	// issuer, audience, or authorized-party failure. The wrapped reason
	// is for diagnostics only.
	ErrTokenInvalid = validator.ErrTokenInvalid
)
