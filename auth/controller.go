package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darshvaidya/go-blog-client/events"
	"github.com/darshvaidya/go-blog-client/internal/errors"
	"github.com/darshvaidya/go-blog-client/rest"
	"github.com/darshvaidya/go-blog-client/session"
)

// Controller drives the session lifecycle: register, login, logout and the
// password reset round-trips. Together with the Coordinator's refresh path
// it is the only code that mutates the session store, and every mutation
// replaces principal and credential pair together.
//
// Auth endpoints are issued directly through the Executor. None of them are
// gated on the access token, so routing them through the refresh-and-retry
// policy would only invite loops on the token-exchange routes.
type Controller struct {
	executor *rest.Executor
	store    session.Store
	events   events.Publisher
}

// NewController creates a Controller over the given store. A nil publisher
// discards lifecycle events.
func NewController(executor *rest.Executor, store session.Store, publisher events.Publisher) *Controller {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Controller{
		executor: executor,
		store:    store,
		events:   publisher,
	}
}

type authEnvelope struct {
	User   *session.User      `json:"user"`
	Tokens *session.TokenPair `json:"tokens"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// CurrentSession returns the session as persisted, hydrating it from the
// store on every call so restarts pick up where the last process left off
func (c *Controller) CurrentSession(ctx context.Context) (session.Session, error) {
	return c.store.Get(ctx)
}

// IsAuthenticated reports whether a principal with a usable access token is
// present
func (c *Controller) IsAuthenticated(ctx context.Context) bool {
	current, err := c.store.Get(ctx)
	if err != nil {
		return false
	}
	return current.Authenticated()
}

// Register creates an account and opens a session from the response
func (c *Controller) Register(ctx context.Context, input RegisterInput) (session.User, error) {
	if err := input.Validate(); err != nil {
		return session.User{}, errors.Wrapf(errors.ErrInvalidInput, "register: %s", err.Error())
	}
	return c.openSession(ctx, rest.Post("/auth/register", input).WithoutRetry(),
		events.KindRegister, "Registration failed")
}

// Login verifies credentials and opens a session from the response
func (c *Controller) Login(ctx context.Context, input LoginInput) (session.User, error) {
	if err := input.Validate(); err != nil {
		return session.User{}, errors.Wrapf(errors.ErrInvalidInput, "login: %s", err.Error())
	}
	return c.openSession(ctx, rest.Post("/auth/login", input).WithoutRetry(),
		events.KindLogin, "Login failed")
}

// openSession performs an auth exchange and replaces the whole session from
// its response. A 2xx response without a complete credential pair counts as
// malformed and leaves the session untouched, so a principal without tokens
// can never be persisted.
func (c *Controller) openSession(ctx context.Context, d rest.Descriptor, kind events.Kind, fallback string) (session.User, error) {
	res, err := c.executor.Do(ctx, d, "")
	if err != nil {
		return session.User{}, err
	}
	if !res.OK() {
		return session.User{}, rest.ResultError(res, fallback)
	}

	var envelope authEnvelope
	if res.Payload != nil {
		if err := json.Unmarshal(res.Payload, &envelope); err != nil {
			envelope = authEnvelope{}
		}
	}
	if envelope.User == nil || envelope.Tokens == nil || !envelope.Tokens.Complete() {
		return session.User{}, errors.Wrapf(errors.ErrMalformedResponse, "%s", fallback)
	}
	if envelope.Tokens.TokenType == "" {
		envelope.Tokens.TokenType = "Bearer"
	}

	next := session.Session{User: envelope.User, Tokens: envelope.Tokens}
	if err := c.store.Set(ctx, next); err != nil {
		return session.User{}, errors.Wrapf(err, "persist session")
	}

	c.publish(ctx, kind, envelope.User)
	return *envelope.User, nil
}

// Logout tears the session down. The remote revocation call is best-effort:
// local state is cleared whether or not the server was reachable.
func (c *Controller) Logout(ctx context.Context) error {
	current, err := c.store.Get(ctx)
	if err != nil {
		return err
	}

	if current.Tokens != nil && current.Tokens.RefreshToken != "" {
		c.bestEffortRevoke(ctx, current.Tokens.RefreshToken)
	}

	if err := c.store.Clear(ctx); err != nil {
		return errors.Wrapf(err, "clear session")
	}
	c.publish(ctx, events.KindLogout, current.User)
	return nil
}

// bestEffortRevoke asks the server to revoke the refresh token and swallows
// every failure: an unreachable server must never keep a user logged in
// locally
func (c *Controller) bestEffortRevoke(ctx context.Context, refreshToken string) {
	d := rest.Descriptor{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Body:   map[string]string{"refresh_token": refreshToken},
	}
	res, err := c.executor.Do(ctx, d, "")
	if err != nil {
		log.Warn().Err(err).Msg("Remote logout unreachable, clearing local session anyway")
		return
	}
	if !res.OK() {
		log.Warn().Int("status", res.Status).Msg("Remote logout rejected, clearing local session anyway")
	}
}

// RequestPasswordReset asks the server to email a reset link. It does not
// touch the session.
func (c *Controller) RequestPasswordReset(ctx context.Context, input RequestResetInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "password reset request: %s", err.Error())
	}

	res, err := c.executor.Do(ctx, rest.Post("/auth/password-reset/request", input).WithoutRetry(), "")
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", rest.ResultError(res, "Password reset request failed")
	}

	var envelope messageEnvelope
	if res.Payload != nil {
		_ = json.Unmarshal(res.Payload, &envelope)
	}
	return envelope.Message, nil
}

// ConfirmPasswordReset completes a reset using the token from the emailed
// link. It does not touch the session.
func (c *Controller) ConfirmPasswordReset(ctx context.Context, input ConfirmResetInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "password reset confirm: %s", err.Error())
	}

	res, err := c.executor.Do(ctx, rest.Post("/auth/password-reset/confirm", input).WithoutRetry(), "")
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", rest.ResultError(res, "Password reset failed")
	}

	var envelope messageEnvelope
	if res.Payload != nil {
		_ = json.Unmarshal(res.Payload, &envelope)
	}
	return envelope.Message, nil
}

func (c *Controller) publish(ctx context.Context, kind events.Kind, user *session.User) {
	event := events.Event{Kind: kind, At: time.Now()}
	if user != nil {
		event.UserID = user.ID
		event.Email = user.Email
	}
	if err := c.events.Publish(ctx, event); err != nil {
		log.Err(err).Str("kind", string(kind)).Msg("Failed to publish session event")
	}
}
