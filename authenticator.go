package tokenauth

import (
	"context"
	"fmt"
	"reflect"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Auther composes the registration and login flows around a shared token
// issuer. It holds no mutable state between requests: the store and token
// service are read-only after construction.
type Auther struct {
	store        CredentialStore
	tokenService TokenService
	hook         SignInHook
	activitySink ActivitySink
	logger       Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store CredentialStore, cfg Config) *Auther {
	return &Auther{
		store:        store,
		tokenService: NewTokenServiceFromConfig(cfg, defLogger{}),
		hook:         noopSignInHook{},
		activitySink: noopActivitySink{},
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService sets a custom token service, e.g. one with a different
// application marker.
func (s *Auther) WithTokenService(service TokenService) *Auther {
	s.tokenService = service
	return s
}

// WithSignInHook configures the post-authentication sign-in hook.
func (s *Auther) WithSignInHook(hook SignInHook) *Auther {
	s.hook = normalizeSignInHook(hook)
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register provisions a new account and, when creation reports zero
// errors, signs the identity in and issues a token right away. Any error
// coming back from the store short-circuits issuance: a token is never
// returned alongside reported errors, even when the store also produced
// an identity object.
func (s *Auther) Register(ctx context.Context, credential Credential) (envelope *TokenEnvelope, err error) {
	defer s.guard("register", &err)

	if verr := credential.ValidateForRegistration(); verr != nil {
		fields := FormatValidationErrorToMap(verr)
		s.emitAuthEvent(ctx, ActivityEventRegisterFailure, ActorRef{Type: "unknown"}, "", map[string]any{
			"identifier": credential.Identifier,
			"fields":     fields,
		})
		return nil, NewValidationError("invalid registration payload", fields)
	}

	identity, cerr := s.store.Create(ctx, credential.Identifier, credential.Email, credential.Secret)
	if cerr != nil {
		s.logger.Error("Register create account error", "error", cerr)
		s.emitAuthEvent(ctx, ActivityEventRegisterFailure, ActorRef{Type: "unknown"}, "", map[string]any{
			"identifier": credential.Identifier,
			"error":      cerr.Error(),
		})
		return nil, creationError(cerr)
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Register identity is nil or zero value")
		return nil, goerrors.New("credential store returned no identity", goerrors.CategoryInternal)
	}

	s.signIn(ctx, identity)

	envelope, terr := s.tokenService.Issue(identity)
	if terr != nil {
		s.emitAuthEvent(ctx, ActivityEventRegisterFailure, s.actorFromIdentity(identity), identity.ID(), map[string]any{
			"identifier": credential.Identifier,
			"error":      terr.Error(),
		})
		return nil, terr
	}

	s.emitAuthEvent(ctx, ActivityEventRegisterSuccess, s.actorFromIdentity(identity), identity.ID(), map[string]any{
		"identifier": credential.Identifier,
	})

	return envelope, nil
}

// Login verifies the credential and issues a token on success. Every
// verification failure collapses into the same generic rejection so the
// response never reveals whether the identifier or the secret was wrong.
func (s *Auther) Login(ctx context.Context, credential Credential) (envelope *TokenEnvelope, err error) {
	defer s.guard("login", &err)

	if verr := credential.ValidateForLogin(); verr != nil {
		fields := FormatValidationErrorToMap(verr)
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, ActorRef{Type: "unknown"}, "", map[string]any{
			"identifier": credential.Identifier,
			"fields":     fields,
		})
		return nil, NewValidationError("invalid login payload", fields)
	}

	identity, verr := s.store.Verify(ctx, credential.Identifier, credential.Secret)
	if verr != nil || identity == nil || reflect.ValueOf(identity).IsZero() {
		if verr != nil {
			s.logger.Debug("Login verify identity error", "error", verr)
		}
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, ActorRef{Type: "unknown"}, "", map[string]any{
			"identifier": credential.Identifier,
		})
		return nil, NewInvalidLoginError()
	}

	s.signIn(ctx, identity)

	envelope, terr := s.tokenService.Issue(identity)
	if terr != nil {
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, s.actorFromIdentity(identity), identity.ID(), map[string]any{
			"identifier": credential.Identifier,
			"error":      terr.Error(),
		})
		return nil, terr
	}

	s.emitAuthEvent(ctx, ActivityEventLoginSuccess, s.actorFromIdentity(identity), identity.ID(), map[string]any{
		"identifier": credential.Identifier,
	})

	return envelope, nil
}

// SessionFromToken validates a previously issued token and projects its
// claims into a session view.
func (s *Auther) SessionFromToken(raw string) (*SessionObject, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	return sessionFromTokenClaims(claims)
}

// signIn records that the identity is signed in for this request. The hook
// is fire-and-forget: a failing or missing hook never blocks issuance.
func (s *Auther) signIn(ctx context.Context, identity Identity) {
	if err := normalizeSignInHook(s.hook).SignedIn(ctx, identity); err != nil {
		s.logger.Error("sign-in hook error", "error", err)
	}

	s.emitAuthEvent(ctx, ActivityEventSessionEstablished, s.actorFromIdentity(identity), identity.ID(), nil)
}

// guard is the single top-level boundary per flow: any panic escaping the
// flow becomes a generic internal fault carrying only its message.
func (s *Auther) guard(flow string, err *error) {
	r := recover()
	if r == nil {
		return
	}

	s.logger.Error("recovered fault during "+flow, "panic", r)
	*err = goerrors.New(fmt.Sprintf("unexpected fault during %s: %v", flow, r), goerrors.CategoryInternal).
		WithTextCode(TextCodeUnexpectedFault)
}

// creationError normalizes a store creation failure: validation errors and
// rich errors surface verbatim, anything else is reported as a creation
// rejection.
func creationError(err error) error {
	if fields := FormatValidationErrorToMap(err); len(fields) > 0 {
		return NewValidationError("could not create account", fields)
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich
	}

	return goerrors.Wrap(err, goerrors.CategoryValidation, "could not create account").
		WithTextCode(TextCodeValidation)
}

func (s *Auther) emitAuthEvent(ctx context.Context, eventType ActivityEventType, actor ActorRef, userID string, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType: eventType,
		Actor:     actor,
		UserID:    userID,
		Metadata:  metadata,
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Error("activity sink record error", "error", err)
	}
}

func (s *Auther) actorFromIdentity(identity Identity) ActorRef {
	if identity == nil {
		return ActorRef{Type: "unknown"}
	}

	return ActorRef{
		ID:   identity.ID(),
		Type: "user",
	}
}
