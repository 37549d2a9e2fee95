package tokenauth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated principal. It is
// produced by a CredentialStore on successful verification or creation and
// owned for the duration of one request.
type Identity interface {
	ID() string
	Username() string
	Email() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Register(ctx context.Context, credential Credential) (*TokenEnvelope, error)
	Login(ctx context.Context, credential Credential) (*TokenEnvelope, error)
	SessionFromToken(token string) (*SessionObject, error)
}

// CredentialStore is the persistence contract the flows consume. It owns
// account storage, uniqueness rules, and secret verification; the core
// trusts its output without re-validation.
type CredentialStore interface {
	// Create provisions a new account. Creation rule violations come back
	// as a validation-category error; an account is never partially created.
	Create(ctx context.Context, username, email, secret string) (Identity, error)
	// Verify checks the secret for the given identifier. Any failure,
	// including an unknown identifier, has to surface as an error the
	// caller can collapse into a uniform rejection.
	Verify(ctx context.Context, identifier, secret string) (Identity, error)
}

// Config holds token issuance options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	GetExpireHours() float64
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] TOKENAUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] TOKENAUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] TOKENAUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
