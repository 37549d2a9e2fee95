package tokenauth

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventRegisterSuccess    ActivityEventType = "auth.register.success"
	ActivityEventRegisterFailure    ActivityEventType = "auth.register.failure"
	ActivityEventLoginSuccess       ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure       ActivityEventType = "auth.login.failure"
	ActivityEventSessionEstablished ActivityEventType = "auth.session.established"
)

// ActorRef identifies who triggered an event.
type ActorRef struct {
	ID   string
	Type string
}

// ActivityEvent captures audit-friendly information about an action.
type ActivityEvent struct {
	EventType  ActivityEventType
	Actor      ActorRef
	UserID     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}

// SignInHook records that an identity is signed in for the current request
// context. It runs after the store has confirmed the identity and before
// token issuance; the issuer does not depend on anything it does, so
// implementations are free to be no-ops.
type SignInHook interface {
	SignedIn(ctx context.Context, identity Identity) error
}

// SignInHookFunc adapts a function to the SignInHook interface.
type SignInHookFunc func(ctx context.Context, identity Identity) error

// SignedIn implements SignInHook.
func (f SignInHookFunc) SignedIn(ctx context.Context, identity Identity) error {
	if f == nil {
		return nil
	}
	return f(ctx, identity)
}

type noopSignInHook struct{}

func (noopSignInHook) SignedIn(context.Context, Identity) error {
	return nil
}

func normalizeSignInHook(h SignInHook) SignInHook {
	if h == nil {
		return noopSignInHook{}
	}
	return h
}
