package oidcauth

import (
	"errors"
	"strings"
)

// Credential is a raw bearer token together with the scheme the caller
// declared for it. The transport layer that extracted the Authorization
// header builds one; the Authenticator checks the scheme.
type Credential struct {
	Scheme string
	Token  string
}

// NewBearerCredential builds a Credential with the bearer scheme.
func NewBearerCredential(token string) *Credential {
	return &Credential{Scheme: "Bearer", Token: token}
}

// SchemeIsBearer reports whether the declared scheme equals "bearer",
// compared case-insensitively.
func (c *Credential) SchemeIsBearer() bool {
	return strings.EqualFold(c.Scheme, "bearer")
}

// ParseAuthorizationHeader splits an Authorization header value into a
// Credential. An empty header returns a nil Credential and no error: a
// simply absent credential is not a parse failure. A header that does not
// consist of exactly a scheme and a token is malformed.
func ParseAuthorizationHeader(header string) (*Credential, error) {
	if header == "" {
		return nil, nil
	}

	parts := strings.Fields(header)
	if len(parts) != 2 {
		return nil, errors.New("authorization header format must be Bearer {token}")
	}

	return &Credential{Scheme: parts[0], Token: parts[1]}, nil
}
