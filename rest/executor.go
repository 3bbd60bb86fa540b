package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result carries the HTTP status and the decoded JSON payload of one call.
// Payload is nil when the response body was empty or not valid JSON; callers
// must tolerate a nil payload even on success statuses.
type Result struct {
	Status  int
	Payload json.RawMessage
}

// OK reports whether the status is a 2xx
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Executor issues a single credentialed HTTP call against the platform API.
// It never interprets the response status; transport-level failure is the
// only condition it surfaces as an error.
type Executor struct {
	baseURL string
	client  *http.Client
}

// NewExecutor creates an Executor for the given API base URL. A nil client
// falls back to a default with a 30 second timeout.
func NewExecutor(baseURL string, client *http.Client) *Executor {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Executor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

const defaultTimeout = 30 * time.Second

// Do performs the described request. The Authorization header is attached
// only when a non-empty value is supplied.
func (e *Executor) Do(ctx context.Context, d Descriptor, authorization string) (Result, error) {
	var body io.Reader
	if d.Body != nil {
		raw, err := json.Marshal(d.Body)
		if err != nil {
			return Result{}, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, e.baseURL+d.Path, body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: %w", d.Method, d.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response body: %w", err)
	}

	return Result{Status: resp.StatusCode, Payload: decodeOrNull(raw)}, nil
}

// decodeOrNull maps an empty or malformed response body to a nil payload
// instead of an error
func decodeOrNull(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}
