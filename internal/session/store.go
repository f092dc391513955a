// Package session persists the token issued by the auth service. A front end
// owns exactly one token slot; writes overwrite the previous value and the
// token never expires on the client.
package session

import (
	"context"
	"errors"
	"sync"
)

// TokenKey is the fixed name under which every store keeps the token.
const TokenKey = "token"

// ErrNoToken is returned by Token when the slot is empty.
var ErrNoToken = errors.New("no session token stored")

// TokenStore is a single-slot key-value store for the session token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored token or ErrNoToken.
func (s *MemoryStore) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

// SetToken overwrites the stored token.
func (s *MemoryStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// ClearToken empties the slot.
func (s *MemoryStore) ClearToken(ctx context.Context) error {
	return s.SetToken(ctx, "")
}
