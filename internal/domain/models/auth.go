package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT claims structure issued by the identity provider
// fronting the admin console. Only the fields the picker backend needs are
// mapped; everything else in the token is ignored.
type AccessClaims struct {
	jwt.RegisteredClaims        // sub, iss, aud, exp, iat, ...
	Email                string `json:"email"`
	Role                 string `json:"role"`
	TenantID             string `json:"tenant_id"`
}

// GetUserID returns the authenticated user's id from the subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}
