package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"deliveryClient/internal/platform/storage"
)

// TokenStorageKey is the key under which the bearer token is persisted.
const TokenStorageKey = "auth_token"

// TokenStore persists the bearer token and guards every read with an expiry check.
type TokenStore struct {
	store     storage.Store
	inspector *Inspector
}

func NewTokenStore(store storage.Store, inspector *Inspector) *TokenStore {
	if inspector == nil {
		inspector = NewInspector()
	}
	return &TokenStore{store: store, inspector: inspector}
}

// Get returns the raw persisted token, or "" when none is stored.
func (s *TokenStore) Get() (string, error) {
	value, err := s.store.Get(TokenStorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(value), nil
}

func (s *TokenStore) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Remove()
	}
	if err := s.store.Set(TokenStorageKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

func (s *TokenStore) Remove() error {
	if err := s.store.Delete(TokenStorageKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Valid returns the persisted token when it is still usable. Expired or malformed tokens are
// discarded and "" is returned. The check runs on every call.
func (s *TokenStore) Valid() (string, error) {
	token, err := s.Get()
	if err != nil || token == "" {
		return "", err
	}
	if s.inspector.IsExpired(token) {
		slog.Info("discarding expired or malformed token")
		if err := s.Remove(); err != nil {
			return "", err
		}
		return "", nil
	}
	return token, nil
}

// Claims decodes the persisted token, returning nil when absent or undecodable.
func (s *TokenStore) Claims() *Claims {
	token, err := s.Get()
	if err != nil || token == "" {
		return nil
	}
	return s.inspector.Decode(token)
}

// Role returns the primary role claim of the persisted token.
func (s *TokenStore) Role() string {
	return s.Claims().PrimaryRole()
}

// IsExpired exposes the inspector's expiry check for arbitrary tokens.
func (s *TokenStore) IsExpired(token string) bool {
	return s.inspector.IsExpired(token)
}
