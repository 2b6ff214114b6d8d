package apitour

import (
	"crypto/subtle"
	"fmt"
)

// DefaultTokenHeader is the header carrying the API token.
const DefaultTokenHeader = "Token"

// TokenChecker compares a supplied token against the configured one.
//
// With Enforce unset the checker only reports whether the token matched and
// never rejects, which is how the protected route behaved before the check
// was enforced.
type TokenChecker struct {
	Token   string
	Enforce bool
}

// NewTokenChecker returns an enforcing checker for token.
func NewTokenChecker(token string) TokenChecker {
	return TokenChecker{Token: token, Enforce: true}
}

// Matches reports whether supplied equals the configured token.
// An empty configured token never matches.
func (c TokenChecker) Matches(supplied string) bool {
	return c.Token != "" && subtle.ConstantTimeCompare([]byte(supplied), []byte(c.Token)) == 1
}

// Check returns ErrForbidden when supplied does not match and the checker
// enforces.
func (c TokenChecker) Check(supplied string) error {
	if c.Matches(supplied) || !c.Enforce {
		return nil
	}
	if supplied == "" {
		return fmt.Errorf("check token: no token supplied: %w", ErrForbidden)
	}
	return fmt.Errorf("check token: %w", ErrForbidden)
}
