package session

import "time"

// Role is a user role at the platform level
type Role string

const (
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// User is the authenticated principal as returned by the API. It is only
// ever replaced wholesale from a server response, never edited locally.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// TokenPair holds the opaque bearer credentials issued by the platform.
// The expiry timestamps are decoded for completeness but never drive any
// client-side decision: access-token expiry is discovered reactively through
// a 401 response.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	AccessExpiresAt  time.Time `json:"access_expires_at,omitzero"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at,omitzero"`
}

// Complete reports whether both credentials are present. A pair is either
// fully present or the session holds none.
func (t TokenPair) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// Session pairs one optional principal with one optional credential pair.
// A session with only one of the two is treated as unauthenticated and must
// not survive past the end of any lifecycle operation.
type Session struct {
	User   *User      `json:"user,omitempty"`
	Tokens *TokenPair `json:"tokens,omitempty"`
}

// Authenticated reports whether the session holds a principal and a usable
// access token.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Tokens != nil && s.Tokens.AccessToken != ""
}

// Empty reports whether the session holds nothing at all.
func (s Session) Empty() bool {
	return s.User == nil && s.Tokens == nil
}
