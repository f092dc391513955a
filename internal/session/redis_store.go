package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps connection failures from the redis store.
var ErrRedisUnavailable = errors.New("redis unavailable")

// RedisStore keeps the token in a single redis key shared by every front-end
// instance pointing at the same prefix. Writes are last-writer-wins and the
// key carries no TTL.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a RedisStore storing the token at "<prefix>:token".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	key := TokenKey
	if prefix != "" {
		key = prefix + ":" + TokenKey
	}
	return &RedisStore{client: client, key: key}
}

// NewRedisClient parses url (redis://...) into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Key returns the redis key holding the token.
func (s *RedisStore) Key() string { return s.key }

// Token fetches the token.
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return token, nil
}

// SetToken overwrites the token without expiry.
func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// ClearToken deletes the key.
func (s *RedisStore) ClearToken(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
