package tokenauth

import (
	"time"
)

// SessionObject is the caller-facing view of a validated token's claims.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Email          string     `json:"email,omitempty"`
	Audience       []string   `json:"audience,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	TokenID        string     `json:"token_id,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func sessionFromTokenClaims(claims *TokenClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrTokenMalformed
	}

	session := &SessionObject{
		UserID:   claims.Subject(),
		Email:    claims.Email(),
		Audience: claims.RegisteredClaims.Audience,
		Issuer:   claims.RegisteredClaims.Issuer,
		TokenID:  claims.TokenID(),
	}

	if issuedAt := claims.IssuedAt(); !issuedAt.IsZero() {
		session.IssuedAt = &issuedAt
	}

	if expires := claims.Expires(); !expires.IsZero() {
		session.ExpirationDate = &expires
	}

	return session, nil
}
