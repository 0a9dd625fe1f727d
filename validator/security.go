package validator

import (
	"errors"
	"strings"
)

const (
	// maxTokenDots is the maximum number of dots allowed in a token.
	// Only JWS compact serialization (header.payload.signature) is
	// accepted here, so anything beyond two dots is rejected before the
	// token reaches the parser.
	maxTokenDots = 2

	// maxTokenBytes rejects tokens that are suspiciously large. Valid
	// JWTs rarely exceed a few KB.
	maxTokenBytes = 1024 * 1024
)

// validateTokenFormat performs cheap pre-validation on the raw token string
// before it reaches the JWT parser.
func validateTokenFormat(tokenString string) error {
	if len(tokenString) == 0 {
		return errors.New("token is empty")
	}

	if len(tokenString) > maxTokenBytes {
		return errors.New("token exceeds maximum size (1MB)")
	}

	if strings.Count(tokenString, ".") > maxTokenDots {
		return errors.New("token contains excessive dots")
	}

	return nil
}
