package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore is a Redis implementation of the Store interface, for
// deployments that keep the session record in a shared cache instead of on
// local disk.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new Redis store holding the session record under
// a single well-known key
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "go_blog_client:session",
	}
}

func (s *RedisStore) Get(ctx context.Context) (Session, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session record: %w", err)
	}

	var current Session
	if err := json.Unmarshal(raw, &current); err != nil {
		// A corrupted record is treated the same as no record
		return Session{}, nil
	}
	return current, nil
}

func (s *RedisStore) Set(ctx context.Context, next Session) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to remove session record: %w", err)
	}
	return nil
}
