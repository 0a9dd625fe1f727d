package validator

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// WithIssuer sets the expected issuer claim (iss) for token validation.
// Tokens whose iss claim does not exactly equal the passed in value are
// rejected. When this option is not supplied, issuer verification is
// skipped entirely.
func WithIssuer(issuerURL string) Option {
	return func(v *Validator) error {
		if issuerURL == "" {
			return errors.New("issuer cannot be empty")
		}
		if _, err := url.Parse(issuerURL); err != nil {
			return fmt.Errorf("invalid issuer URL: %w", err)
		}
		v.expectedIssuer = issuerURL
		return nil
	}
}

// WithAudience sets the client identifier that must be present in the
// token's aud claim, which may be a single string or a list. When this
// option is not supplied, audience verification is skipped entirely.
func WithAudience(audience string) Option {
	return func(v *Validator) error {
		if audience == "" {
			return errors.New("audience cannot be empty")
		}
		v.expectedAudience = audience
		return nil
	}
}

// WithAllowedClockSkew sets the allowed clock skew for time-based claims.
//
// This allows for some tolerance when validating the exp claim to account
// for clock differences between systems. If not set, the default is 0.
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.allowedClockSkew = skew
		return nil
	}
}
