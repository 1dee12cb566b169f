package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents service token custom claims. Callers of the notifier API
// are backend services, not end users, so the subject names the client
// service and Scopes limits what it may render.
type Claims struct {
	Client string   `json:"client"`
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// HasScope reports whether the token grants the named scope. A token with no
// scopes grants everything.
func (c *Claims) HasScope(scope string) bool {
	if len(c.Scopes) == 0 {
		return true
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
