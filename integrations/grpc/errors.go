package grpcauth

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	oidcauth "github.com/third-party-auth/go-oidc-auth"
)

// statusFromError maps authentication failures to gRPC status errors.
// Scope failures map to PermissionDenied, an unreachable authorization
// server maps to Unavailable, and every other authentication failure maps
// to Unauthenticated.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, oidcauth.ErrInsufficientScope):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, oidcauth.ErrProviderUnreachable):
		return status.Error(codes.Unavailable, "could not reach the authorization server")
	case errors.Is(err, oidcauth.ErrCredentialMissing),
		errors.Is(err, oidcauth.ErrSchemeMismatch),
		errors.Is(err, oidcauth.ErrKeyNotFound),
		errors.Is(err, oidcauth.ErrTokenInvalid),
		errors.Is(err, oidcauth.ErrMalformedJWKS),
		errors.Is(err, oidcauth.ErrIdentityConstruction),
		errors.Is(err, ErrMultipleAuthHeaders),
		errors.Is(err, ErrInvalidAuthFormat):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, "authentication failed")
	}
}
