package tokenauth_test

import (
	"context"

	tokenauth "github.com/goliatone/go-tokenauth"
	"github.com/stretchr/testify/mock"
)

// TestIdentity is a simple implementation of Identity interface for testing
type TestIdentity struct {
	id       string
	username string
	email    string
}

func (t TestIdentity) ID() string       { return t.id }
func (t TestIdentity) Username() string { return t.username }
func (t TestIdentity) Email() string    { return t.email }

// MockCredentialStore implements tokenauth.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Create(ctx context.Context, username, email, secret string) (tokenauth.Identity, error) {
	args := m.Called(ctx, username, email, secret)
	var identity tokenauth.Identity
	if v := args.Get(0); v != nil {
		identity = v.(tokenauth.Identity)
	}
	return identity, args.Error(1)
}

func (m *MockCredentialStore) Verify(ctx context.Context, identifier, secret string) (tokenauth.Identity, error) {
	args := m.Called(ctx, identifier, secret)
	var identity tokenauth.Identity
	if v := args.Get(0); v != nil {
		identity = v.(tokenauth.Identity)
	}
	return identity, args.Error(1)
}

// MockConfig implements tokenauth.Config
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetSigningKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetIssuer() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetAudience() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockConfig) GetExpireHours() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

func newMockConfig() *MockConfig {
	mockConfig := new(MockConfig)
	mockConfig.On("GetSigningKey").Return("test-signing-key")
	mockConfig.On("GetIssuer").Return("test-issuer")
	mockConfig.On("GetAudience").Return([]string{"test:audience"})
	mockConfig.On("GetExpireHours").Return(2.0)
	return mockConfig
}

// capturingSink records every activity event it receives
type capturingSink struct {
	events []tokenauth.ActivityEvent
}

func (c *capturingSink) Record(ctx context.Context, evt tokenauth.ActivityEvent) error {
	c.events = append(c.events, evt)
	return nil
}

func (c *capturingSink) has(eventType tokenauth.ActivityEventType) bool {
	for _, evt := range c.events {
		if evt.EventType == eventType {
			return true
		}
	}
	return false
}

// recordingHook captures sign-in hook invocations
type recordingHook struct {
	identities []tokenauth.Identity
	err        error
}

func (r *recordingHook) SignedIn(ctx context.Context, identity tokenauth.Identity) error {
	r.identities = append(r.identities, identity)
	return r.err
}

type silentLogger struct{}

func (silentLogger) Debug(string, ...any) {}
func (silentLogger) Info(string, ...any)  {}
func (silentLogger) Error(string, ...any) {}
