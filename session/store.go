package session

import "context"

// Store persists the session record across process restarts.
//
// Implementations must resolve an absent or malformed record to an empty
// Session rather than an error, and must write the record atomically so a
// reader never observes a principal without its tokens.
type Store interface {
	// Get returns the current session, or the empty session when no usable
	// record exists
	Get(ctx context.Context) (Session, error)

	// Set replaces the persisted record with the given session
	Set(ctx context.Context, s Session) error

	// Clear removes the persisted record
	Clear(ctx context.Context) error
}
