package tokenauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// markerClaimName is the fixed application claim present in every token.
const markerClaimName = "app"

// DefaultMarkerValue is the static marker embedded under the "app" claim
// unless the token service is configured with another value.
const DefaultMarkerValue = "go-tokenauth"

// TokenClaims is the claim set issued for a verified identity. On top of
// the registered claims it carries the identity's email under unique_name
// and a fixed application marker.
type TokenClaims struct {
	jwt.RegisteredClaims
	UniqueName string `json:"unique_name,omitempty"`
	App        string `json:"app,omitempty"`
}

// Email returns the unique-name claim bound at issuance
func (c *TokenClaims) Email() string {
	return c.UniqueName
}

// Marker returns the static application claim
func (c *TokenClaims) Marker() string {
	return c.App
}

// TokenID returns the jti claim. It is unique per issuance; two tokens for
// the same identity never share it.
func (c *TokenClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

// Subject returns the subject claim
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureTokenID makes sure claims carry a fresh jti. Issuance relies on
// this to keep two tokens for the same identity distinct.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.New().String()
	}
}
