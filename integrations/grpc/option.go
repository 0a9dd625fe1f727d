package grpcauth

import "fmt"

// Option configures the Interceptor.
type Option func(*Interceptor) error

// WithRequiredScopes sets the scopes demanded on every method this
// interceptor guards, merged with the Authenticator's static scopes.
func WithRequiredScopes(scopes ...string) Option {
	return func(i *Interceptor) error {
		for idx, scope := range scopes {
			if scope == "" {
				return fmt.Errorf("scope at index %d cannot be empty", idx)
			}
		}
		i.scopes = scopes
		return nil
	}
}

// WithCredentialsOptional allows requests without a credential through
// without an identity. Invalid credentials are still rejected.
func WithCredentialsOptional(optional bool) Option {
	return func(i *Interceptor) error {
		i.credentialsOptional = optional
		return nil
	}
}

// WithExcludedMethods sets full method names (e.g. "/health.v1.Health/Check")
// that skip authentication entirely.
func WithExcludedMethods(methods ...string) Option {
	return func(i *Interceptor) error {
		for _, method := range methods {
			if method == "" {
				return fmt.Errorf("excluded method cannot be empty")
			}
			i.excludedMethods[method] = true
		}
		return nil
	}
}
