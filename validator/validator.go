// Package validator verifies OIDC bearer tokens against a provider's
// published keys and validates their claims.
package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// ErrTokenInvalid is the single externally visible kind for every
// cryptographic, expiry, issuer, audience, or authorized-party failure.
// The wrapped reason is for diagnostics; callers should not branch on it.
var ErrTokenInvalid = errors.New("token invalid")

// Validator verifies a raw bearer token against a JSON Web Key Set and the
// set of signing algorithms the provider advertises as supported.
//
// Issuer and audience checks are explicit opt-ins: when the corresponding
// option is not supplied the check is skipped entirely, mirroring a
// provider-less deployment rather than silently passing.
type Validator struct {
	expectedIssuer   string        // Optional.
	expectedAudience string        // Optional.
	allowedClockSkew time.Duration // Optional.
}

// New sets up a new Validator with the supplied options.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return v, nil
}

// ValidateToken verifies the token's signature using a key resolved from
// the passed in key set, then validates expiry and the configured issuer
// and audience expectations. A token is never verified with an algorithm
// outside the provider-advertised set, regardless of what its own header
// claims.
//
// A multi-audience token that lacks an azp claim is rejected even when no
// audience expectation is configured.
func (v *Validator) ValidateToken(
	ctx context.Context,
	tokenString string,
	keys jwk.Set,
	algorithms []string,
) (VerifiedClaims, error) {
	if err := validateTokenFormat(tokenString); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if len(algorithms) == 0 {
		return nil, fmt.Errorf("%w: provider advertises no supported signing algorithms", ErrTokenInvalid)
	}

	parseOpts := []jwt.ParserOption{
		jwt.WithValidMethods(algorithms),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.allowedClockSkew),
	}
	if v.expectedIssuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(v.expectedIssuer))
	}
	if v.expectedAudience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(v.expectedAudience))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return ResolveKey(ctx, token, keys)
	}, parseOpts...)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: could not get token claims", ErrTokenInvalid)
	}

	if err := validateAuthorizedParty(mapClaims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	return VerifiedClaims(mapClaims), nil
}

// validateAuthorizedParty enforces the multi-audience invariant: a token
// whose aud claim is a list with one or more entries must declare an
// authorized party. A single-string aud passes unconditionally.
func validateAuthorizedParty(claims jwt.MapClaims) error {
	audiences, ok := claims["aud"].([]any)
	if !ok || len(audiences) == 0 {
		return nil
	}

	if _, ok := claims["azp"]; !ok {
		return errors.New(`missing authorized party "azp" claim when there are multiple audiences`)
	}

	return nil
}
