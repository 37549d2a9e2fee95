package tokenauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenService converts a verified identity into a signed token envelope
// and validates previously issued tokens.
type TokenService interface {
	Issue(identity Identity) (*TokenEnvelope, error)
	SignClaims(claims *TokenClaims) (string, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenServiceImpl implements the TokenService interface over a symmetric
// HMAC-SHA256 key. It keeps no per-request state: every call re-signs with
// the configured key and reads the clock, so it is safe to use
// concurrently without synchronization.
type TokenServiceImpl struct {
	signingKey []byte
	expiration time.Duration
	issuer     string
	audience   jwt.ClaimStrings
	marker     string
	logger     Logger
}

var _ TokenService = (*TokenServiceImpl)(nil)

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, expiration time.Duration, issuer string, audience []string, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		expiration: expiration,
		issuer:     issuer,
		audience:   audience,
		marker:     DefaultMarkerValue,
		logger:     logger,
	}
}

// NewTokenServiceFromConfig wires a TokenService from a Config, converting
// the floating-point hour lifetime into a duration.
func NewTokenServiceFromConfig(cfg Config, logger Logger) *TokenServiceImpl {
	return NewTokenService(
		[]byte(cfg.GetSigningKey()),
		ExpirationFromHours(cfg.GetExpireHours()),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		logger,
	)
}

// ExpirationFromHours converts a fractional hour count into a duration.
func ExpirationFromHours(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// WithMarker overrides the static application claim value.
func (ts *TokenServiceImpl) WithMarker(marker string) *TokenServiceImpl {
	ts.marker = marker
	return ts
}

// Issue builds the claim set for an authenticated identity, signs it, and
// returns the envelope. The jti claim is freshly generated on every call,
// so back-to-back issuances for the same identity never produce identical
// tokens.
func (ts *TokenServiceImpl) Issue(identity Identity) (*TokenEnvelope, error) {
	if identity == nil {
		return nil, goerrors.New("identity is required", goerrors.CategoryBadInput)
	}

	now := time.Now().UTC()
	expiration := now.Add(ts.expiration)

	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.ID(),
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiration),
		},
		UniqueName: identity.Email(),
		App:        ts.marker,
	}

	ensureTokenID(&claims.RegisteredClaims)

	signed, err := ts.SignClaims(claims)
	if err != nil {
		return nil, err
	}

	return &TokenEnvelope{
		Authenticated: true,
		Token:         signed,
		Expiration:    expiration,
		Message:       EnvelopeMessage,
	}, nil
}

// SignClaims signs arbitrary token claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *TokenClaims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Validate(tokenString string) (*TokenClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
