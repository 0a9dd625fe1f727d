package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// ErrKeyNotFound is returned when the signing key for a token cannot be
// located in the provider's key set: the set has no keys, the token header
// carries no kid, or no key's kid matches the token's.
var ErrKeyNotFound = errors.New("no matching key found in JWKS")

// ResolveKey locates the key that signed the token by matching the token
// header's kid against the key set and exports its raw key material for
// signature verification. Matching is exact string equality on the key id;
// the first matching key wins.
func ResolveKey(_ context.Context, token *jwt.Token, keys jwk.Set) (any, error) {
	if keys == nil || keys.Len() == 0 {
		return nil, fmt.Errorf("%w: JWKS contains no keys", ErrKeyNotFound)
	}

	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, fmt.Errorf("%w: field 'kid' is missing from JWT headers", ErrKeyNotFound)
	}

	key, found := keys.LookupKeyID(kid)
	if !found {
		return nil, fmt.Errorf("%w: no JWK with kid %q", ErrKeyNotFound, kid)
	}

	var rawKey any
	if err := jwk.Export(key, &rawKey); err != nil {
		return nil, fmt.Errorf("%w: could not export key material for kid %q: %v", ErrKeyNotFound, kid, err)
	}

	return rawKey, nil
}
