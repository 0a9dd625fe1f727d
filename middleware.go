package oidcauth

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorHandler is a handler which is called when authentication fails in
// the Middleware. The err can be matched against the error kinds of this
// package for specific cases. The default handler returns 401 for every
// authentication failure, 503 when the authorization server is
// unreachable, and 500 for anything else.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the default error handler implementation for the
// Middleware.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, ErrProviderUnreachable):
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"Could not reach the authorization server."}`))
	case errors.Is(err, ErrCredentialMissing),
		errors.Is(err, ErrSchemeMismatch),
		errors.Is(err, ErrKeyNotFound),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrMalformedJWKS),
		errors.Is(err, ErrInsufficientScope),
		errors.Is(err, ErrIdentityConstruction):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(fmt.Sprintf(`{"message":%q}`, "Unauthorized: "+err.Error())))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong while checking the credential."}`))
	}
}

// Middleware adapts an Authenticator to net/http. It extracts the bearer
// credential from the Authorization header, authenticates it, and stores
// the resulting identity in the request context for handlers downstream.
type Middleware struct {
	auth                *Authenticator
	errorHandler        ErrorHandler
	credentialsOptional bool
	scopes              []string
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware) error

// WithErrorHandler sets the handler called when authentication fails.
//
// Default: DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(m *Middleware) error {
		if h == nil {
			return errors.New("error handler cannot be nil")
		}
		m.errorHandler = h
		return nil
	}
}

// WithCredentialsOptional sets whether requests without a credential are
// allowed through. When true, such requests proceed without an identity in
// the context; a credential that is present but invalid is still rejected.
//
// Default: false (credentials required).
func WithCredentialsOptional(optional bool) MiddlewareOption {
	return func(m *Middleware) error {
		m.credentialsOptional = optional
		return nil
	}
}

// WithRequiredScopes sets the scopes this middleware demands on every
// request it guards, merged with the Authenticator's static scopes.
func WithRequiredScopes(scopes ...string) MiddlewareOption {
	return func(m *Middleware) error {
		for i, scope := range scopes {
			if scope == "" {
				return fmt.Errorf("scope at index %d cannot be empty", i)
			}
		}
		m.scopes = scopes
		return nil
	}
}

// NewMiddleware constructs a Middleware around the passed in Authenticator.
func NewMiddleware(auth *Authenticator, opts ...MiddlewareOption) (*Middleware, error) {
	if auth == nil {
		return nil, errors.New("authenticator cannot be nil")
	}

	m := &Middleware{
		auth:         auth,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return m, nil
}

// CheckAuth wraps next with bearer authentication. On success the identity
// is stored in the request context and can be retrieved with GetIdentity.
func (m *Middleware) CheckAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential, err := ParseAuthorizationHeader(r.Header.Get("Authorization"))
		if err != nil {
			m.errorHandler(w, r, fmt.Errorf("%w: %v", ErrSchemeMismatch, err))
			return
		}

		var identity any
		if m.credentialsOptional {
			identity, err = m.auth.AuthenticateOptional(r.Context(), credential, m.scopes...)
		} else {
			identity, err = m.auth.AuthenticateRequired(r.Context(), credential, m.scopes...)
		}
		if err != nil {
			m.errorHandler(w, r, err)
			return
		}

		// Optional mode with no credential supplied: continue without
		// an identity in the context.
		if identity == nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.Clone(SetIdentity(r.Context(), identity)))
	})
}
