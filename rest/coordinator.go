package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darshvaidya/go-blog-client/events"
	"github.com/darshvaidya/go-blog-client/session"
)

// Outcome tags how an authenticated call completed
type Outcome int

const (
	// OutcomeDirect means the first attempt's result was returned as-is
	OutcomeDirect Outcome = iota

	// OutcomeRefreshed means the credential pair was rotated and the
	// request replayed once
	OutcomeRefreshed

	// OutcomeInvalidated means the refresh attempt failed terminally and
	// the session was cleared
	OutcomeInvalidated
)

// RefreshPath is the token-exchange route. Calls to it are issued directly
// through the Executor and are never themselves retry-eligible.
const RefreshPath = "/auth/refresh"

// Coordinator wraps an Executor with the single silent refresh-and-retry
// policy: per invocation at most one refresh call and at most one replay,
// and the two session side effects (rotation, invalidation) are mutually
// exclusive.
type Coordinator struct {
	executor *Executor
	store    session.Store
	events   events.Publisher
}

// NewCoordinator creates a Coordinator mutating the given store. A nil
// publisher discards lifecycle events.
func NewCoordinator(executor *Executor, store session.Store, publisher events.Publisher) *Coordinator {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Coordinator{
		executor: executor,
		store:    store,
		events:   publisher,
	}
}

type refreshEnvelope struct {
	Tokens *session.TokenPair `json:"tokens"`
}

// Do issues the described request with the current session's access token.
//
// A 401 on a retry-eligible descriptor with a refresh token available
// triggers exactly one refresh call. On refresh success the rotated pair is
// persisted before the request is replayed once, and the replay's result is
// returned whatever its status. On refresh rejection the session is cleared
// and the original 401 is returned, so the caller sees its own operation
// fail rather than the refresh's status. Transport errors anywhere propagate
// unchanged and trigger neither side effect.
func (c *Coordinator) Do(ctx context.Context, d Descriptor) (Result, Outcome, error) {
	current, err := c.store.Get(ctx)
	if err != nil {
		return Result{}, OutcomeDirect, err
	}

	first, err := c.executor.Do(ctx, d, authorization(current.Tokens))
	if err != nil {
		return Result{}, OutcomeDirect, err
	}

	if first.Status != http.StatusUnauthorized || !d.Retry ||
		current.Tokens == nil || current.Tokens.RefreshToken == "" {
		return first, OutcomeDirect, nil
	}

	rotated, err := c.refresh(ctx, current.Tokens.RefreshToken)
	if err != nil {
		return Result{}, OutcomeDirect, err
	}

	if rotated == nil {
		// Terminal authentication failure: tear the session down and
		// report the original 401.
		if err := c.store.Clear(ctx); err != nil {
			log.Err(err).Msg("Failed to clear session after refresh rejection")
		}
		c.publish(ctx, events.KindInvalidated, current.User)
		return first, OutcomeInvalidated, nil
	}

	// Persist the rotated pair before replaying so a crash mid-flight never
	// leaves storage behind the credentials in use.
	next := session.Session{User: current.User, Tokens: rotated}
	if err := c.store.Set(ctx, next); err != nil {
		return Result{}, OutcomeDirect, err
	}
	c.publish(ctx, events.KindTokenRefresh, current.User)

	retry, err := c.executor.Do(ctx, d, authorization(rotated))
	if err != nil {
		return Result{}, OutcomeRefreshed, err
	}
	return retry, OutcomeRefreshed, nil
}

// refresh exchanges the refresh token for a new credential pair. It returns
// a nil pair, not an error, when the exchange was rejected or the response
// lacked a complete pair; errors are reserved for transport failure.
func (c *Coordinator) refresh(ctx context.Context, refreshToken string) (*session.TokenPair, error) {
	d := Descriptor{
		Method: http.MethodPost,
		Path:   RefreshPath,
		Body:   map[string]string{"refresh_token": refreshToken},
	}

	res, err := c.executor.Do(ctx, d, "")
	if err != nil {
		return nil, err
	}
	if !res.OK() || res.Payload == nil {
		return nil, nil
	}

	var envelope refreshEnvelope
	if err := json.Unmarshal(res.Payload, &envelope); err != nil {
		return nil, nil
	}
	if envelope.Tokens == nil || !envelope.Tokens.Complete() {
		return nil, nil
	}
	return envelope.Tokens, nil
}

func (c *Coordinator) publish(ctx context.Context, kind events.Kind, user *session.User) {
	event := events.Event{Kind: kind, At: time.Now()}
	if user != nil {
		event.UserID = user.ID
		event.Email = user.Email
	}
	if err := c.events.Publish(ctx, event); err != nil {
		log.Err(err).Str("kind", string(kind)).Msg("Failed to publish session event")
	}
}

// authorization formats the Authorization header value for a credential
// pair, defaulting the scheme to Bearer when the server omitted a type
func authorization(tokens *session.TokenPair) string {
	if tokens == nil || tokens.AccessToken == "" {
		return ""
	}
	scheme := tokens.TokenType
	if scheme == "" {
		scheme = "Bearer"
	}
	return scheme + " " + tokens.AccessToken
}
