package tokenauth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCredentialStore is an in-memory CredentialStore. It enforces the
// same uniqueness rules as the Bun-backed store and is safe for concurrent
// use, which makes it a drop-in backend for tests and environments
// without a database.
type MemoryCredentialStore struct {
	mu       sync.RWMutex
	accounts map[string]*memoryAccount
	byEmail  map[string]string
	byID     map[string]string
}

type memoryAccount struct {
	id           uuid.UUID
	username     string
	email        string
	passwordHash string
	signedInAt   *time.Time
}

var (
	_ CredentialStore = (*MemoryCredentialStore)(nil)
	_ SignInHook      = (*MemoryCredentialStore)(nil)
)

// NewMemoryCredentialStore creates an empty in-memory store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		accounts: map[string]*memoryAccount{},
		byEmail:  map[string]string{},
		byID:     map[string]string{},
	}
}

// Create provisions a new account, rejecting duplicate usernames and
// emails with the same validation shape as the Bun store.
func (s *MemoryCredentialStore) Create(ctx context.Context, username, email, secret string) (Identity, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	hash, err := HashPassword(secret)

	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]string{}

	if _, exists := s.accounts[username]; exists {
		fields["identifier"] = "identifier is already taken"
	}
	if _, exists := s.byEmail[email]; exists {
		fields["email"] = "email is already taken"
	}
	if err != nil {
		if errors.Is(err, ErrNoEmptyString) {
			fields["secret"] = "secret cannot be blank"
		} else {
			fields["secret"] = "secret is not usable"
		}
	}

	if len(fields) > 0 {
		return nil, NewValidationError("could not create account", fields)
	}

	account := &memoryAccount{
		id:           uuid.New(),
		username:     username,
		email:        email,
		passwordHash: hash,
	}

	s.accounts[username] = account
	s.byEmail[email] = username
	s.byID[account.id.String()] = username

	return account.identity(), nil
}

// Verify resolves the identifier as a username, email, or account ID and
// compares the secret. Unknown identifiers and mismatched secrets return
// the same error.
func (s *MemoryCredentialStore) Verify(ctx context.Context, identifier, secret string) (Identity, error) {
	s.mu.RLock()
	account := s.resolve(identifier)
	s.mu.RUnlock()

	if account == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if err := ComparePasswordAndHash(secret, account.passwordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return account.identity(), nil
}

// SignedIn implements SignInHook by stamping the account's sign-in time.
func (s *MemoryCredentialStore) SignedIn(ctx context.Context, identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.resolve(identity.ID())
	if account == nil {
		return ErrIdentityNotFound
	}

	now := time.Now()
	account.signedInAt = &now
	return nil
}

// SignedInAt reports when the identifier last signed in, if ever.
func (s *MemoryCredentialStore) SignedInAt(identifier string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account := s.resolve(identifier)
	if account == nil || account.signedInAt == nil {
		return time.Time{}, false
	}
	return *account.signedInAt, true
}

// resolve expects the caller to hold the lock.
func (s *MemoryCredentialStore) resolve(identifier string) *memoryAccount {
	identifier = strings.TrimSpace(identifier)

	if account, ok := s.accounts[identifier]; ok {
		return account
	}
	if username, ok := s.byEmail[identifier]; ok {
		return s.accounts[username]
	}
	if username, ok := s.byID[identifier]; ok {
		return s.accounts[username]
	}
	return nil
}

func (a *memoryAccount) identity() Identity {
	return authIdentity{
		id:       a.id.String(),
		username: a.username,
		email:    a.email,
	}
}
