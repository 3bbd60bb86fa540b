package events

import (
	"context"
	"time"
)

// Kind identifies a session lifecycle event
type Kind string

const (
	KindRegister     Kind = "session.register"
	KindLogin        Kind = "session.login"
	KindLogout       Kind = "session.logout"
	KindTokenRefresh Kind = "session.token_refresh"
	KindInvalidated  Kind = "session.invalidated"
)

// Event describes one session lifecycle transition
type Event struct {
	Kind   Kind      `json:"kind"`
	UserID string    `json:"user_id,omitempty"`
	Email  string    `json:"email,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher emits session lifecycle events. Publishing is best-effort:
// callers log failures and carry on, they never block an auth flow on the
// event bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards all events
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
