package usecase

import (
	"context"
	"log/slog"
	"sync"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
)

// CollectionState is the load lifecycle of a mirrored collection.
type CollectionState int

const (
	StateUninitialized CollectionState = iota
	StateLoading
	StateReady
	StateErrored
)

func (s CollectionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	default:
		return "uninitialized"
	}
}

// Keyed is implemented by every mirrored record.
type Keyed interface {
	Key() string
}

// Collection is the local mirror of a remote collection. Reads return copies; writers replace
// the slice wholesale so readers never observe a partially applied change.
type Collection[T Keyed] struct {
	entity   string
	notifier port.Notifier

	mu      sync.RWMutex
	state   CollectionState
	items   []T
	lastErr error
}

func newCollection[T Keyed](entity string, notifier port.Notifier) *Collection[T] {
	if notifier == nil {
		notifier = port.NopNotifier{}
	}
	return &Collection[T]{entity: entity, notifier: notifier}
}

func (c *Collection[T]) Entity() string { return c.entity }

func (c *Collection[T]) State() CollectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Err returns the error of the last failed refresh, or nil once a refresh succeeds.
func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Items returns a snapshot of the local collection.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSlice(c.items)
}

func (c *Collection[T]) Find(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the items matching keep.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) beginLoad() {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
}

// settle ends a load. On failure the previous items are kept so the view stays usable.
func (c *Collection[T]) settle(items []T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateErrored
		c.lastErr = err
		return
	}
	c.state = StateReady
	c.lastErr = nil
	c.items = cloneSlice(items)
}

// apply replaces the items with next(current) and returns the previous snapshot.
func (c *Collection[T]) apply(next func([]T) []T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := c.items
	c.items = next(cloneSlice(before))
	return cloneSlice(before)
}

func (c *Collection[T]) upsert(item T) {
	c.apply(func(items []T) []T {
		for idx := range items {
			if items[idx].Key() == item.Key() {
				items[idx] = item
				return items
			}
		}
		return append(items, item)
	})
}

func (c *Collection[T]) remove(key string) {
	c.removeWhere(func(item T) bool { return item.Key() == key })
}

func (c *Collection[T]) removeWhere(drop func(T) bool) int {
	removed := 0
	c.apply(func(items []T) []T {
		kept := items[:0]
		for _, item := range items {
			if drop(item) {
				removed++
				continue
			}
			kept = append(kept, item)
		}
		return kept
	})
	return removed
}

// reset empties the collection and returns it to the uninitialized state.
func (c *Collection[T]) reset() {
	c.mu.Lock()
	c.items = nil
	c.state = StateUninitialized
	c.lastErr = nil
	c.mu.Unlock()
}

func (c *Collection[T]) publish(ctx context.Context, action, resourceID string, data any, metadata map[string]string) {
	msg := domain.NewMessage(c.entity, action, resourceID, data)
	for key, value := range metadata {
		msg.WithMetadata(key, value)
	}
	slog.Debug("collection change published", slog.String("topic", msg.Topic), slog.String("resourceId", resourceID))
	c.notifier.Broadcast(ctx, msg)
}

func cloneSlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
