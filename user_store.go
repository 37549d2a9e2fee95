package tokenauth

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// BunCredentialStore implements CredentialStore over a Bun users
// repository. It owns uniqueness checks and secret hashing; the flows
// trust its results without re-validation.
type BunCredentialStore struct {
	users  Users
	logger Logger
}

var (
	_ CredentialStore = (*BunCredentialStore)(nil)
	_ SignInHook      = (*BunCredentialStore)(nil)
)

// NewBunCredentialStore will create a credential store over a users
// repository.
func NewBunCredentialStore(users Users) *BunCredentialStore {
	return &BunCredentialStore{
		users:  users,
		logger: defLogger{},
	}
}

func (s *BunCredentialStore) WithLogger(logger Logger) *BunCredentialStore {
	s.logger = logger
	return s
}

// Create provisions a new account. Duplicate identifiers or emails and an
// empty secret come back as a single validation error carrying the field
// map; the account is never partially created.
func (s *BunCredentialStore) Create(ctx context.Context, username, email, secret string) (Identity, error) {
	fields := map[string]string{}

	if err := s.checkAvailable(ctx, "identifier", username, fields); err != nil {
		return nil, err
	}
	if err := s.checkAvailable(ctx, "email", email, fields); err != nil {
		return nil, err
	}

	hash, err := HashPassword(secret)
	if err != nil {
		if errors.Is(err, ErrNoEmptyString) {
			fields["secret"] = "secret cannot be blank"
		} else {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash secret")
		}
	}

	if len(fields) > 0 {
		return nil, NewValidationError("could not create account", fields)
	}

	user := &User{
		Username:       username,
		Email:          email,
		PasswordHash:   hash,
		EmailValidated: true,
	}

	user, err = s.users.Register(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	return user.Identity(), nil
}

// Verify checks the secret for the identifier. An unknown identifier and a
// wrong secret both collapse into ErrMismatchedHashAndPassword so callers
// cannot enumerate accounts. No lockout or attempt counting happens here.
func (s *BunCredentialStore) Verify(ctx context.Context, identifier, secret string) (Identity, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(secret, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return user.Identity(), nil
}

// SignedIn implements SignInHook: it stamps the account's loggedin_at for
// auditability. Failures are reported but never block issuance.
func (s *BunCredentialStore) SignedIn(ctx context.Context, identity Identity) error {
	user, err := s.users.GetByIdentifier(ctx, identity.ID())
	if err != nil {
		return err
	}

	return s.users.TrackSignedIn(ctx, user)
}

func (s *BunCredentialStore) checkAvailable(ctx context.Context, field, value string, fields map[string]string) error {
	if value == "" {
		fields[field] = field + " cannot be blank"
		return nil
	}

	_, err := s.users.GetByIdentifier(ctx, value)
	if err == nil {
		fields[field] = field + " is already taken"
		return nil
	}

	if !repository.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check "+field+" availability")
	}

	return nil
}
