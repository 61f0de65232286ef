package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims the CMS and platform services issue.
// We only ever read them; signature checks happen on the backend.
type Claims struct {
	jwt.RegisteredClaims

	/* Tenant and identity fields */

	// OrganizationID is the tenant the token was minted for. It is forwarded
	// to the backends as X-Tenant-ID.
	OrganizationID string `json:"organization_id,omitempty"`

	// UserID is the CMS user id. Older tokens only carry "sub".
	UserID string `json:"user_id,omitempty"`

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`

	// Permission scopes, e.g. "content:read content:write"
	Scopes []string `json:"scopes,omitempty"`

	// Raw holds every claim in the payload, including ones not mapped above.
	Raw map[string]any `json:"-"`
}

// EffectiveUserID returns the user id, falling back to the registered "sub" claim.
func (c *Claims) EffectiveUserID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

// Claim returns a single raw claim by name.
func (c *Claims) Claim(name string) (any, bool) {
	if c.Raw == nil {
		return nil, false
	}
	v, ok := c.Raw[name]
	return v, ok
}
