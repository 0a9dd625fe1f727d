package validator

// VerifiedClaims is the decoded token payload after signature and claim
// checks: a flat mapping of claim names to their raw JSON values. It is
// constructed per request and never cached.
type VerifiedClaims map[string]any

// Issuer returns the iss claim, or an empty string when absent.
func (c VerifiedClaims) Issuer() string {
	return c.stringClaim("iss")
}

// Subject returns the sub claim, or an empty string when absent.
func (c VerifiedClaims) Subject() string {
	return c.stringClaim("sub")
}

// AuthorizedParty returns the azp claim, or an empty string when absent.
func (c VerifiedClaims) AuthorizedParty() string {
	return c.stringClaim("azp")
}

// Scope returns the space-delimited scope string granted to the token, or
// an empty string when absent.
func (c VerifiedClaims) Scope() string {
	return c.stringClaim("scope")
}

// Audience returns the aud claim normalized to a slice. A single-string
// aud yields a one-element slice; a missing aud yields nil.
func (c VerifiedClaims) Audience() []string {
	switch aud := c["aud"].(type) {
	case string:
		return []string{aud}
	case []any:
		audiences := make([]string, 0, len(aud))
		for _, v := range aud {
			if s, ok := v.(string); ok {
				audiences = append(audiences, s)
			}
		}
		return audiences
	default:
		return nil
	}
}

func (c VerifiedClaims) stringClaim(name string) string {
	s, _ := c[name].(string)
	return s
}
