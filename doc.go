/*
Package oidcauth authenticates callers via OpenID Connect bearer tokens.

Given a provider's discovery URL and a raw bearer token, the Authenticator
verifies the token's signature against the provider's published keys,
validates the standard claims, and enforces the scopes an endpoint
requires. Provider metadata and the key set are fetched lazily and cached
under a configurable TTL, so requests do not pay a network round-trip to
the authorization server more than once per TTL window.

# Quick Start

	import (
	    oidcauth "github.com/third-party-auth/go-oidc-auth"
	)

	func main() {
	    auth, err := oidcauth.New(
	        oidcauth.WithDiscoveryURL("https://dev-123456.okta.com/.well-known/openid-configuration"),
	        oidcauth.WithIssuer("https://dev-123456.okta.com"),
	        oidcauth.WithClientID("my-client-id"),
	        oidcauth.WithScopes("openid"),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    middleware, err := oidcauth.NewMiddleware(auth,
	        oidcauth.WithRequiredScopes("read"),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    http.Handle("/api/", middleware.CheckAuth(apiHandler))
	    http.ListenAndServe(":8080", nil)
	}

# Accessing the Identity

Use the type-safe generic helper to access the identity in your handlers:

	func apiHandler(w http.ResponseWriter, r *http.Request) {
	    idToken, err := oidcauth.GetIdentity[*oidcauth.IDToken](r.Context())
	    if err != nil {
	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
	        return
	    }
	    fmt.Fprintf(w, "hello %s", idToken.PreferredUsername)
	}

# Required vs Optional

AuthenticateRequired fails the call on any authentication problem.
AuthenticateOptional returns no identity when the credential is absent or
carries a non-bearer scheme, but still rejects a credential that is present
and invalid: only the absence of a token is tolerated.

# Identity Shape

The default identity record is IDToken. Supply WithIdentityFactory to build
your own record from the verified claim map; factories must fail on missing
required fields so a partially populated identity never reaches handlers.

# Error Kinds

All authentication failures surface as one of the package's error kinds
(ErrCredentialMissing, ErrSchemeMismatch, ErrProviderUnreachable,
ErrMalformedJWKS, ErrKeyNotFound, ErrTokenInvalid, ErrInsufficientScope,
ErrIdentityConstruction) and can be matched with errors.Is. Signature and
claim failures are deliberately collapsed into ErrTokenInvalid: callers see
"unauthorized", operators read the reason from logs.
*/
package oidcauth
