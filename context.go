package oidcauth

import (
	"context"
	"errors"
)

// ErrIdentityNotFound is returned when no identity is stored in the context.
var ErrIdentityNotFound = errors.New("identity not found in context")

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	identityKey contextKey = iota
)

// SetIdentity stores the authenticated identity in the context.
// Transport adapters call this after a successful authentication.
func SetIdentity(ctx context.Context, identity any) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the authenticated identity from the context with
// type safety using generics.
//
// Example:
//
//	idToken, err := oidcauth.GetIdentity[*oidcauth.IDToken](r.Context())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(idToken.Subject)
func GetIdentity[T any](ctx context.Context) (T, error) {
	var zero T

	val := ctx.Value(identityKey)
	if val == nil {
		return zero, ErrIdentityNotFound
	}

	identity, ok := val.(T)
	if !ok {
		return zero, errors.New("identity type assertion failed")
	}

	return identity, nil
}

// HasIdentity checks if an identity exists in the context without
// retrieving it.
func HasIdentity(ctx context.Context) bool {
	return ctx.Value(identityKey) != nil
}
