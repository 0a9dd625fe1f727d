package oidcauth

import (
	"fmt"

	"github.com/third-party-auth/go-oidc-auth/validator"
)

// IdentityFactory constructs the caller-facing identity record from a flat
// mapping of verified claim names to values. Callers supply their own
// factory to shape the record; NewIDToken is the default. A factory must
// fail when a claim it requires is absent rather than returning a partially
// populated record; the Authenticator wraps such failures in
// ErrIdentityConstruction.
type IdentityFactory func(claims validator.VerifiedClaims) (any, error)

// IDToken is the default identity record: the registered ID-token claims
// plus the common profile claims, with the full claim map retained for
// provider-specific fields.
type IDToken struct {
	Issuer            string   `json:"iss"`
	Subject           string   `json:"sub"`
	Audience          []string `json:"aud"`
	Expiry            int64    `json:"exp"`
	IssuedAt          int64    `json:"iat"`
	AuthorizedParty   string   `json:"azp,omitempty"`
	Scope             string   `json:"scope,omitempty"`
	Email             string   `json:"email,omitempty"`
	EmailVerified     bool     `json:"email_verified,omitempty"`
	Name              string   `json:"name,omitempty"`
	PreferredUsername string   `json:"preferred_username,omitempty"`

	// Claims is the full verified claim map the record was built from.
	Claims validator.VerifiedClaims `json:"-"`
}

// NewIDToken is the default IdentityFactory. It requires the iss, sub,
// aud, exp and iat claims and fails when any of them is absent.
func NewIDToken(claims validator.VerifiedClaims) (any, error) {
	for _, required := range []string{"iss", "sub", "aud", "exp", "iat"} {
		if _, ok := claims[required]; !ok {
			return nil, fmt.Errorf("required claim %q is missing", required)
		}
	}

	expiry, err := numericClaim(claims, "exp")
	if err != nil {
		return nil, err
	}
	issuedAt, err := numericClaim(claims, "iat")
	if err != nil {
		return nil, err
	}

	emailVerified, _ := claims["email_verified"].(bool)

	return &IDToken{
		Issuer:            claims.Issuer(),
		Subject:           claims.Subject(),
		Audience:          claims.Audience(),
		Expiry:            expiry,
		IssuedAt:          issuedAt,
		AuthorizedParty:   claims.AuthorizedParty(),
		Scope:             claims.Scope(),
		Email:             stringClaim(claims, "email"),
		EmailVerified:     emailVerified,
		Name:              stringClaim(claims, "name"),
		PreferredUsername: stringClaim(claims, "preferred_username"),
		Claims:            claims,
	}, nil
}

func stringClaim(claims validator.VerifiedClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}

// numericClaim reads a numeric claim. JSON numbers decode as float64.
func numericClaim(claims validator.VerifiedClaims, name string) (int64, error) {
	switch v := claims[name].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("claim %q is not a numeric value", name)
	}
}
