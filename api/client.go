package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/darshvaidya/go-blog-client/rest"
	"github.com/darshvaidya/go-blog-client/session"
)

const fallbackMessage = "API request failed"

// Client is the typed facade over the platform's domain endpoints. Every
// call goes through the Coordinator, so a 401 is transparently refreshed and
// replayed at most once before a result is surfaced.
type Client struct {
	coordinator *rest.Coordinator
}

// NewClient creates a Client routing requests through the given Coordinator
func NewClient(coordinator *rest.Coordinator) *Client {
	return &Client{coordinator: coordinator}
}

// ListPosts returns one page of posts. Zero page or limit values are
// omitted from the query so the server applies its own defaults.
func (c *Client) ListPosts(ctx context.Context, page, limit int) (PostPage, error) {
	res, _, err := c.coordinator.Do(ctx, rest.Get("/posts"+pageQuery(page, limit)))
	if err != nil {
		return PostPage{}, err
	}
	if !res.OK() {
		return PostPage{}, rest.ResultError(res, fallbackMessage)
	}

	var result PostPage
	decode(res.Payload, &result)
	return result, nil
}

func (c *Client) GetPost(ctx context.Context, postID string) (Post, error) {
	res, _, err := c.coordinator.Do(ctx, rest.Get("/posts/"+postID))
	if err != nil {
		return Post{}, err
	}
	if !res.OK() {
		return Post{}, rest.ResultError(res, fallbackMessage)
	}

	var envelope struct {
		Data Post `json:"data"`
	}
	decode(res.Payload, &envelope)
	return envelope.Data, nil
}

func (c *Client) CreatePost(ctx context.Context, input PostInput) (Post, error) {
	res, _, err := c.coordinator.Do(ctx, rest.Post("/posts", input))
	if err != nil {
		return Post{}, err
	}
	if !res.OK() {
		return Post{}, rest.ResultError(res, fallbackMessage)
	}

	var envelope struct {
		Data Post `json:"data"`
	}
	decode(res.Payload, &envelope)
	return envelope.Data, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID string, input PostInput) (Post, error) {
	res, _, err := c.coordinator.Do(ctx, rest.Patch("/posts/"+postID, input))
	if err != nil {
		return Post{}, err
	}
	if !res.OK() {
		return Post{}, rest.ResultError(res, fallbackMessage)
	}

	var envelope struct {
		Data Post `json:"data"`
	}
	decode(res.Payload, &envelope)
	return envelope.Data, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	res, _, err := c.coordinator.Do(ctx, rest.Delete("/posts/"+postID))
	if err != nil {
		return err
	}
	if !res.OK() {
		return rest.ResultError(res, fallbackMessage)
	}
	return nil
}

// ListUsers returns one page of users. Requires the admin role server-side.
func (c *Client) ListUsers(ctx context.Context, page, limit int) (UserPage, error) {
	res, _, err := c.coordinator.Do(ctx, rest.Get("/admin/users"+pageQuery(page, limit)))
	if err != nil {
		return UserPage{}, err
	}
	if !res.OK() {
		return UserPage{}, rest.ResultError(res, fallbackMessage)
	}

	var result UserPage
	decode(res.Payload, &result)
	return result, nil
}

// UpdateUserRole changes a user's role. Requires the admin role server-side.
func (c *Client) UpdateUserRole(ctx context.Context, userID string, role session.Role) (session.User, error) {
	body := map[string]session.Role{"role": role}
	res, _, err := c.coordinator.Do(ctx, rest.Patch("/admin/users/"+userID+"/role", body))
	if err != nil {
		return session.User{}, err
	}
	if !res.OK() {
		return session.User{}, rest.ResultError(res, fallbackMessage)
	}

	var envelope struct {
		Data session.User `json:"data"`
	}
	decode(res.Payload, &envelope)
	return envelope.Data, nil
}

// pageQuery renders page and limit as a query string, dropping values that
// are unset so they never appear as empty parameters
func pageQuery(page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if raw := q.Encode(); raw != "" {
		return "?" + raw
	}
	return ""
}

// decode tolerates a nil payload: a success status with an empty or
// malformed body leaves the target at its zero value
func decode(payload json.RawMessage, target any) {
	if payload == nil {
		return
	}
	_ = json.Unmarshal(payload, target)
}
