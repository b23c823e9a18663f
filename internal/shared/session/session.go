package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"deliveryClient/internal/platform/storage"
)

// StorageKey is the key under which the anonymous session identifier is persisted.
const StorageKey = "session_id"

// Provider hands out the anonymous visitor identifier used to attribute a cart before login.
type Provider struct {
	store storage.Store
	newID func() string
	mu    sync.Mutex
}

func NewProvider(store storage.Store) *Provider {
	return &Provider{store: store, newID: func() string { return uuid.NewString() }}
}

// GetOrCreate returns the persisted identifier, generating and persisting a new one when absent.
func (p *Provider) GetOrCreate() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok, err := p.read()
	if err != nil {
		return "", err
	}
	if ok {
		return current, nil
	}

	id := p.newID()
	if err := p.store.Set(StorageKey, id); err != nil {
		return "", fmt.Errorf("persist session id: %w", err)
	}
	slog.Info("session id created", slog.String("sessionId", id))
	return id, nil
}

// Get returns the persisted identifier without creating one. ok is false when none exists.
func (p *Provider) Get() (id string, ok bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.read()
}

// Clear forgets the identifier; the next GetOrCreate issues a fresh one.
func (p *Provider) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Delete(StorageKey); err != nil {
		return fmt.Errorf("clear session id: %w", err)
	}
	slog.Info("session id cleared")
	return nil
}

func (p *Provider) read() (string, bool, error) {
	value, err := p.store.Get(StorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session id: %w", err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}
