// Package echoauth adapts the oidcauth Authenticator to the Echo web
// framework.
package echoauth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	oidcauth "github.com/third-party-auth/go-oidc-auth"
)

// DefaultIdentityKey is the echo.Context key the identity is stored under.
var DefaultIdentityKey = "identity"

// ErrorHandler handles authentication failures in the Echo adapter.
type ErrorHandler func(c echo.Context, err error) error

// Middleware returns an echo.MiddlewareFunc that authenticates requests
// with the passed in Authenticator. On success the identity is available
// both via GetIdentity on the echo.Context and via oidcauth.GetIdentity on
// the request context.
func Middleware(auth *oidcauth.Authenticator, opts ...Option) echo.MiddlewareFunc {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
		identityKey:  DefaultIdentityKey,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, err := oidcauth.ParseAuthorizationHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return cfg.errorHandler(c, err)
			}

			var identity any
			if cfg.credentialsOptional {
				identity, err = auth.AuthenticateOptional(c.Request().Context(), credential, cfg.scopes...)
			} else {
				identity, err = auth.AuthenticateRequired(c.Request().Context(), credential, cfg.scopes...)
			}
			if err != nil {
				return cfg.errorHandler(c, err)
			}

			if identity != nil {
				c.Set(cfg.identityKey, identity)
				c.SetRequest(c.Request().Clone(oidcauth.SetIdentity(c.Request().Context(), identity)))
			}

			return next(c)
		}
	}
}

// GetIdentity extracts the authenticated identity from the Echo context.
func GetIdentity[T any](c echo.Context, identityKey string) (T, bool) {
	var zero T

	val := c.Get(identityKey)
	if val == nil {
		return zero, false
	}

	identity, ok := val.(T)
	return identity, ok
}

func defaultErrorHandler(c echo.Context, err error) error {
	status := http.StatusUnauthorized
	if errors.Is(err, oidcauth.ErrProviderUnreachable) {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]string{"message": err.Error()})
}
