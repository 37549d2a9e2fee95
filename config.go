package tokenauth

import (
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// TokenSettings is a string-backed Config. It mirrors the flat key/value
// configuration surface most deployments expose: a signing secret, issuer,
// audience, and an expiration expressed as floating-point hours in text
// form. The expiration is parsed exactly once, at construction.
type TokenSettings struct {
	signingKey  string
	issuer      string
	audience    []string
	expireHours float64
}

var _ Config = (*TokenSettings)(nil)

// NewTokenSettings validates and parses the raw configuration values.
// A missing signing key or an unparsable expireHours is a configuration
// fault, not a per-request condition: no token can ever be issued
// correctly while it persists, so construction fails instead.
func NewTokenSettings(signingKey, issuer, expireHours string, audience ...string) (*TokenSettings, error) {
	if signingKey == "" {
		return nil, goerrors.New("signing key is required", goerrors.CategoryInternal).
			WithTextCode(TextCodeConfigFault)
	}

	hours, err := strconv.ParseFloat(expireHours, 64)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "expire hours is not a valid number").
			WithTextCode(TextCodeConfigFault).
			WithMetadata(map[string]any{"expire_hours": expireHours})
	}

	if hours <= 0 {
		return nil, goerrors.New("expire hours must be greater than zero", goerrors.CategoryInternal).
			WithTextCode(TextCodeConfigFault).
			WithMetadata(map[string]any{"expire_hours": expireHours})
	}

	return &TokenSettings{
		signingKey:  signingKey,
		issuer:      issuer,
		audience:    audience,
		expireHours: hours,
	}, nil
}

// MustTokenSettings is NewTokenSettings that panics on a configuration
// fault, for wiring at program startup.
func MustTokenSettings(signingKey, issuer, expireHours string, audience ...string) *TokenSettings {
	settings, err := NewTokenSettings(signingKey, issuer, expireHours, audience...)
	if err != nil {
		panic(err)
	}
	return settings
}

// GetSigningKey returns the symmetric key material
func (s *TokenSettings) GetSigningKey() string {
	return s.signingKey
}

// GetIssuer returns the token issuer
func (s *TokenSettings) GetIssuer() string {
	return s.issuer
}

// GetAudience returns the token audience
func (s *TokenSettings) GetAudience() []string {
	return s.audience
}

// GetExpireHours returns the parsed token lifetime in hours
func (s *TokenSettings) GetExpireHours() float64 {
	return s.expireHours
}
