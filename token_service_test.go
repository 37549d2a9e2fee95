package tokenauth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	tokenauth "github.com/goliatone/go-tokenauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(expiration time.Duration) *tokenauth.TokenServiceImpl {
	return tokenauth.NewTokenService(
		[]byte("test-signing-key"),
		expiration,
		"test-issuer",
		[]string{"test:audience"},
		silentLogger{},
	)
}

func TestIssue(t *testing.T) {
	identity := TestIdentity{
		id:       uuid.New().String(),
		username: "alice",
		email:    "a@x.com",
	}

	t.Run("Envelope carries the signed token and metadata", func(t *testing.T) {
		service := newTestTokenService(2 * time.Hour)

		before := time.Now().UTC()
		envelope, err := service.Issue(identity)
		after := time.Now().UTC()

		require.NoError(t, err)
		require.NotNil(t, envelope)
		assert.True(t, envelope.Authenticated)
		assert.NotEmpty(t, envelope.Token)
		assert.Equal(t, tokenauth.EnvelopeMessage, envelope.Message)

		assert.False(t, envelope.Expiration.Before(before.Add(2*time.Hour)))
		assert.False(t, envelope.Expiration.After(after.Add(2*time.Hour)))
	})

	t.Run("Claims are bound to the identity", func(t *testing.T) {
		service := newTestTokenService(2 * time.Hour)

		envelope, err := service.Issue(identity)
		require.NoError(t, err)

		claims, err := service.Validate(envelope.Token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email())
		assert.Equal(t, tokenauth.DefaultMarkerValue, claims.Marker())
		assert.Equal(t, identity.ID(), claims.Subject())
		assert.Equal(t, "test-issuer", claims.RegisteredClaims.Issuer)
		assert.Equal(t, jwt.ClaimStrings{"test:audience"}, claims.RegisteredClaims.Audience)
		assert.WithinDuration(t, envelope.Expiration, claims.Expires(), time.Second)
	})

	t.Run("Back-to-back issuances never repeat the token ID", func(t *testing.T) {
		service := newTestTokenService(2 * time.Hour)

		first, err := service.Issue(identity)
		require.NoError(t, err)
		second, err := service.Issue(identity)
		require.NoError(t, err)

		assert.NotEqual(t, first.Token, second.Token)

		firstClaims, err := service.Validate(first.Token)
		require.NoError(t, err)
		secondClaims, err := service.Validate(second.Token)
		require.NoError(t, err)

		assert.NotEmpty(t, firstClaims.TokenID())
		assert.NotEmpty(t, secondClaims.TokenID())
		assert.NotEqual(t, firstClaims.TokenID(), secondClaims.TokenID())
	})

	t.Run("Fractional hour lifetimes are honored", func(t *testing.T) {
		service := tokenauth.NewTokenService(
			[]byte("test-signing-key"),
			tokenauth.ExpirationFromHours(0.5),
			"test-issuer",
			nil,
			silentLogger{},
		)

		envelope, err := service.Issue(identity)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), envelope.Expiration, 5*time.Second)
	})

	t.Run("Custom marker value", func(t *testing.T) {
		service := newTestTokenService(time.Hour).WithMarker("pipoca")

		envelope, err := service.Issue(identity)
		require.NoError(t, err)

		claims, err := service.Validate(envelope.Token)
		require.NoError(t, err)
		assert.Equal(t, "pipoca", claims.Marker())
	})

	t.Run("Nil identity is rejected", func(t *testing.T) {
		service := newTestTokenService(time.Hour)

		envelope, err := service.Issue(nil)
		require.Error(t, err)
		assert.Nil(t, envelope)
	})
}

func TestValidate(t *testing.T) {
	identity := TestIdentity{
		id:       uuid.New().String(),
		username: "alice",
		email:    "a@x.com",
	}

	t.Run("Expired tokens are flagged", func(t *testing.T) {
		service := newTestTokenService(-time.Minute)

		envelope, err := service.Issue(identity)
		require.NoError(t, err)

		_, err = service.Validate(envelope.Token)
		require.ErrorIs(t, err, tokenauth.ErrTokenExpired)
	})

	t.Run("Wrong signing key is rejected", func(t *testing.T) {
		service := newTestTokenService(time.Hour)
		other := tokenauth.NewTokenService(
			[]byte("a-different-key"),
			time.Hour,
			"test-issuer",
			[]string{"test:audience"},
			silentLogger{},
		)

		envelope, err := service.Issue(identity)
		require.NoError(t, err)

		_, err = other.Validate(envelope.Token)
		require.Error(t, err)
	})

	t.Run("Wrong issuer is rejected", func(t *testing.T) {
		service := newTestTokenService(time.Hour)
		other := tokenauth.NewTokenService(
			[]byte("test-signing-key"),
			time.Hour,
			"another-issuer",
			[]string{"test:audience"},
			silentLogger{},
		)

		envelope, err := service.Issue(identity)
		require.NoError(t, err)

		_, err = other.Validate(envelope.Token)
		require.Error(t, err)
	})

	t.Run("Tokens signed with a non-HMAC method are rejected", func(t *testing.T) {
		service := newTestTokenService(time.Hour)

		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &tokenauth.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "test-issuer",
				Audience:  jwt.ClaimStrings{"test:audience"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UniqueName: "a@x.com",
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Validate(raw)
		require.Error(t, err)
	})

	t.Run("Garbage input is malformed", func(t *testing.T) {
		service := newTestTokenService(time.Hour)

		_, err := service.Validate("garbage")
		require.Error(t, err)
	})
}
