// Package token decodes the opaque bearer credential for display purposes.
//
// The Control Tower client never validates tokens — the backend's 401 is
// the only authority on validity. What the client may do is show the
// operator who the token was minted for and when it lapses, which requires
// nothing more than an unverified claim parse.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when the credential is not a parseable JWT.
var ErrMalformedToken = errors.New("malformed access token")

// Claims is the display-only view of the access token. Zero values mean the
// claim was absent.
type Claims struct {
	Subject   string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// Inspect parses the token WITHOUT verifying its signature and returns the
// claims the dashboard shows. The result must never feed an authorization
// decision.
func Inspect(raw string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, mapClaims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}

	c := &Claims{}
	if sub, err := mapClaims.GetSubject(); err == nil {
		c.Subject = sub
	}
	if username, ok := mapClaims["username"].(string); ok {
		c.Username = username
	}
	if role, ok := mapClaims["role"].(string); ok {
		c.Role = role
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}

	return c, nil
}

// Expired reports whether the token's exp claim is in the past. A token
// without an exp claim is never reported expired; the backend decides.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.Before(now)
}
