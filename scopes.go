package oidcauth

import (
	"fmt"
	"strings"
)

// CheckScopes verifies that every required scope appears in the token's
// space-delimited scope string. An empty required set always passes. On
// failure it returns ErrInsufficientScope naming the scopes that are
// missing.
func CheckScopes(tokenScope string, required []string) error {
	if len(required) == 0 {
		return nil
	}

	granted := make(map[string]bool)
	for _, scope := range strings.Split(tokenScope, " ") {
		granted[scope] = true
	}

	var missing []string
	for _, scope := range required {
		if !granted[scope] {
			missing = append(missing, scope)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: token scopes %q do not include %q",
			ErrInsufficientScope, tokenScope, strings.Join(missing, " "))
	}

	return nil
}

// mergeScopes unions the statically configured scopes with the scopes the
// endpoint declared for this call, dropping duplicates while keeping the
// configured order first.
func mergeScopes(static, perCall []string) []string {
	if len(perCall) == 0 {
		return static
	}

	merged := make([]string, 0, len(static)+len(perCall))
	seen := make(map[string]bool, len(static)+len(perCall))
	for _, scope := range static {
		if !seen[scope] {
			seen[scope] = true
			merged = append(merged, scope)
		}
	}
	for _, scope := range perCall {
		if !seen[scope] {
			seen[scope] = true
			merged = append(merged, scope)
		}
	}

	return merged
}
