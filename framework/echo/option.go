package echoauth

// middlewareConfig holds all configuration for the Echo middleware.
type middlewareConfig struct {
	errorHandler        ErrorHandler
	identityKey         string
	scopes              []string
	credentialsOptional bool
}

// Option configures the Echo middleware.
type Option func(*middlewareConfig)

// WithErrorHandler sets a custom handler for authentication failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(cfg *middlewareConfig) {
		if h != nil {
			cfg.errorHandler = h
		}
	}
}

// WithIdentityKey sets the echo.Context key the identity is stored under.
//
// Default: DefaultIdentityKey.
func WithIdentityKey(key string) Option {
	return func(cfg *middlewareConfig) {
		if key != "" {
			cfg.identityKey = key
		}
	}
}

// WithRequiredScopes sets the scopes demanded on every request this
// middleware guards, merged with the Authenticator's static scopes.
func WithRequiredScopes(scopes ...string) Option {
	return func(cfg *middlewareConfig) {
		cfg.scopes = scopes
	}
}

// WithCredentialsOptional allows requests without a credential through
// without an identity. Invalid credentials are still rejected.
func WithCredentialsOptional(optional bool) Option {
	return func(cfg *middlewareConfig) {
		cfg.credentialsOptional = optional
	}
}
