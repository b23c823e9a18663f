package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
)

// EntityCollection mirrors a remote-owned collection. Mutations are remote-first: the local
// mirror only changes after the backend confirms, so a failure leaves it untouched.
type EntityCollection[T Keyed] struct {
	*Collection[T]
	gateway port.EntityGateway[T]

	filterMu sync.Mutex
	filter   port.ListFilter
}

func newEntityCollection[T Keyed](entity string, gateway port.EntityGateway[T], notifier port.Notifier) *EntityCollection[T] {
	return &EntityCollection[T]{Collection: newCollection[T](entity, notifier), gateway: gateway}
}

// Refresh replaces the local collection with the backend's list for filter. The filter is
// remembered and reused by Reload.
func (c *EntityCollection[T]) Refresh(ctx context.Context, filter port.ListFilter) error {
	c.filterMu.Lock()
	c.filter = filter
	c.filterMu.Unlock()

	c.beginLoad()
	slog.Debug("collection refresh start", slog.String("entity", c.entity), slog.String("restaurantId", filter.RestaurantID), slog.String("ownerId", filter.OwnerID))
	items, err := c.gateway.List(ctx, filter)
	c.settle(items, err)
	if err != nil {
		slog.Error("collection refresh failed", slog.String("entity", c.entity), slog.Any("error", err))
		c.publish(ctx, domain.ActionErrored, "", map[string]string{"error": err.Error()}, nil)
		return fmt.Errorf("refresh %s: %w", c.entity, err)
	}
	slog.Debug("collection refresh done", slog.String("entity", c.entity), slog.Int("count", len(items)))
	c.publish(ctx, domain.ActionRefreshed, "", c.Items(), nil)
	return nil
}

// Reload refreshes with the last used filter.
func (c *EntityCollection[T]) Reload(ctx context.Context) error {
	c.filterMu.Lock()
	filter := c.filter
	c.filterMu.Unlock()
	return c.Refresh(ctx, filter)
}

// Get returns the local record when present, otherwise fetches it and splices it in.
func (c *EntityCollection[T]) Get(ctx context.Context, id string) (T, error) {
	id = strings.TrimSpace(id)
	if item, ok := c.Find(id); ok {
		return item, nil
	}
	item, err := c.gateway.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s %s: %w", c.entity, id, err)
	}
	c.upsert(item)
	return item, nil
}

// Create sends entity to the backend and appends the confirmed record, which carries the
// server-assigned id.
func (c *EntityCollection[T]) Create(ctx context.Context, entity T) (T, error) {
	created, err := c.gateway.Create(ctx, entity)
	if err != nil {
		slog.Warn("collection create failed", slog.String("entity", c.entity), slog.Any("error", err))
		var zero T
		return zero, fmt.Errorf("create %s: %w", c.entity, err)
	}
	c.upsert(created)
	c.publish(ctx, domain.ActionCreated, created.Key(), created, nil)
	return created, nil
}

// Update patches the local record with the backend's confirmed version.
func (c *EntityCollection[T]) Update(ctx context.Context, entity T) (T, error) {
	updated, err := c.gateway.Update(ctx, entity)
	if err != nil {
		slog.Warn("collection update failed", slog.String("entity", c.entity), slog.String("id", entity.Key()), slog.Any("error", err))
		var zero T
		return zero, fmt.Errorf("update %s %s: %w", c.entity, entity.Key(), err)
	}
	c.upsert(updated)
	c.publish(ctx, domain.ActionUpdated, updated.Key(), updated, nil)
	return updated, nil
}

// Delete removes the record remotely, then locally.
func (c *EntityCollection[T]) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := c.gateway.Delete(ctx, id); err != nil {
		slog.Warn("collection delete failed", slog.String("entity", c.entity), slog.String("id", id), slog.Any("error", err))
		return fmt.Errorf("delete %s %s: %w", c.entity, id, err)
	}
	c.remove(id)
	c.publish(ctx, domain.ActionDeleted, id, nil, nil)
	return nil
}

// Reset drops the local mirror.
func (c *EntityCollection[T]) Reset() {
	c.reset()
}
