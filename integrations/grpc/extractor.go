package grpcauth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/metadata"

	oidcauth "github.com/third-party-auth/go-oidc-auth"
)

// Extractor errors
var (
	// ErrMultipleAuthHeaders indicates multiple authorization metadata
	// entries were provided.
	ErrMultipleAuthHeaders = errors.New("multiple authorization metadata entries are not allowed")

	// ErrInvalidAuthFormat indicates the authorization metadata format
	// is invalid.
	ErrInvalidAuthFormat = errors.New("invalid authorization metadata format, expected: Bearer <token>")
)

// CredentialFromContext extracts the bearer credential from the
// "authorization" metadata key. gRPC normalizes incoming metadata keys to
// lowercase, so only the lowercase key is checked. A request without
// metadata or without an authorization entry yields a nil credential and
// no error.
func CredentialFromContext(ctx context.Context) (*oidcauth.Credential, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, nil
	}

	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return nil, nil
	}
	if len(authHeaders) > 1 {
		return nil, ErrMultipleAuthHeaders
	}

	parts := strings.Fields(authHeaders[0])
	if len(parts) != 2 {
		return nil, ErrInvalidAuthFormat
	}

	return &oidcauth.Credential{Scheme: parts[0], Token: parts[1]}, nil
}
