package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	cartdomain "deliveryClient/internal/modules/cart/domain"
	dishdomain "deliveryClient/internal/modules/dishes/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/shared/normalization"
)

// CartSync keeps the local cart in step with the backend cart of the current session.
// Mutations are applied locally first and sent afterwards. When the backend rejects one the
// cart is reloaded from the backend and the error is returned; nothing is retried.
//
// Concurrent mutations are not serialized against each other. Their optimistic changes
// apply in call order and any divergence is corrected by the next Refresh.
type CartSync struct {
	*Collection[cartdomain.CartItem]
	gateway  port.CartGateway
	identity *Identity

	confirmedMu sync.Mutex
	confirmed   []cartdomain.CartItem
}

func NewCartSync(gateway port.CartGateway, identity *Identity, notifier port.Notifier) *CartSync {
	return &CartSync{
		Collection: newCollection[cartdomain.CartItem](normalization.EntityCart, notifier),
		gateway:    gateway,
		identity:   identity,
	}
}

// ItemFromDish builds the cart line for one unit of dish.
func ItemFromDish(dish dishdomain.Dish) cartdomain.CartItem {
	return cartdomain.CartItem{
		DishID:       dish.ID,
		RestaurantID: dish.RestaurantID,
		Name:         dish.Name,
		Price:        dish.Price,
		ImageURL:     dish.ImageURL,
		Quantity:     1,
	}
}

// Refresh replaces the local cart with the backend's cart for the session.
func (c *CartSync) Refresh(ctx context.Context) error {
	sessionID, err := c.sessionID()
	if err != nil {
		return err
	}
	return c.refresh(ctx, sessionID)
}

func (c *CartSync) refresh(ctx context.Context, sessionID string) error {
	c.beginLoad()
	items, err := c.gateway.List(ctx, sessionID)
	c.settle(items, err)
	if err != nil {
		slog.Error("cart refresh failed", slog.String("sessionId", sessionID), slog.Any("error", err))
		return fmt.Errorf("refresh cart: %w", err)
	}
	c.confirmedMu.Lock()
	c.confirmed = cloneSlice(items)
	c.confirmedMu.Unlock()
	slog.Debug("cart refreshed", slog.String("sessionId", sessionID), slog.Int("lines", len(items)))
	c.notify(ctx, domain.ActionRefreshed, sessionID)
	return nil
}

// Add puts one more unit of item in the cart.
func (c *CartSync) Add(ctx context.Context, item cartdomain.CartItem) error {
	sessionID, err := c.sessionID()
	if err != nil {
		return err
	}
	c.apply(func(items []cartdomain.CartItem) []cartdomain.CartItem {
		return cartdomain.WithAdded(items, item)
	})
	c.notify(ctx, domain.ActionUpdated, sessionID)

	item.Quantity = 1
	if err := c.gateway.AddItem(ctx, sessionID, item); err != nil {
		return c.rollback(ctx, "add", sessionID, err)
	}
	return nil
}

// Remove drops the line for dishID.
func (c *CartSync) Remove(ctx context.Context, dishID string) error {
	sessionID, err := c.sessionID()
	if err != nil {
		return err
	}
	dishID = strings.TrimSpace(dishID)
	c.apply(func(items []cartdomain.CartItem) []cartdomain.CartItem {
		return cartdomain.Without(items, dishID)
	})
	c.notify(ctx, domain.ActionUpdated, sessionID)

	remoteID, found, err := c.remoteItemID(ctx, sessionID, dishID)
	if err != nil {
		return c.rollback(ctx, "remove", sessionID, err)
	}
	if !found {
		return nil
	}
	if err := c.gateway.DeleteItem(ctx, sessionID, remoteID); err != nil {
		return c.rollback(ctx, "remove", sessionID, err)
	}
	return nil
}

// UpdateQuantity sets the quantity of the line for dishID. Quantities of zero or less remove it.
func (c *CartSync) UpdateQuantity(ctx context.Context, dishID string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, dishID)
	}
	sessionID, err := c.sessionID()
	if err != nil {
		return err
	}
	dishID = strings.TrimSpace(dishID)
	c.apply(func(items []cartdomain.CartItem) []cartdomain.CartItem {
		return cartdomain.WithQuantity(items, dishID, quantity)
	})
	c.notify(ctx, domain.ActionUpdated, sessionID)

	remoteID, found, err := c.remoteItemID(ctx, sessionID, dishID)
	if err != nil {
		return c.rollback(ctx, "update quantity", sessionID, err)
	}
	if !found {
		return nil
	}
	if err := c.gateway.UpdateItem(ctx, sessionID, remoteID, quantity); err != nil {
		return c.rollback(ctx, "update quantity", sessionID, err)
	}
	return nil
}

// Clear empties the cart.
func (c *CartSync) Clear(ctx context.Context) error {
	sessionID, err := c.sessionID()
	if err != nil {
		return err
	}
	c.apply(func([]cartdomain.CartItem) []cartdomain.CartItem { return nil })
	c.notify(ctx, domain.ActionCleared, sessionID)

	if err := c.gateway.Clear(ctx, sessionID); err != nil {
		return c.rollback(ctx, "clear", sessionID, err)
	}
	return nil
}

// TotalPrice is recomputed from the current local cart on every call.
func (c *CartSync) TotalPrice() decimal.Decimal {
	return cartdomain.TotalPrice(c.Items())
}

// TotalItems is recomputed from the current local cart on every call.
func (c *CartSync) TotalItems() int {
	return cartdomain.TotalItems(c.Items())
}

// Reset drops the local cart without touching the backend.
func (c *CartSync) Reset() {
	c.confirmedMu.Lock()
	c.confirmed = nil
	c.confirmedMu.Unlock()
	c.reset()
}

// remoteItemID maps a dish to the backend's cart line id. Line ids differ from dish ids, so
// the current backend cart is consulted.
func (c *CartSync) remoteItemID(ctx context.Context, sessionID, dishID string) (string, bool, error) {
	items, err := c.gateway.List(ctx, sessionID)
	if err != nil {
		return "", false, err
	}
	line, ok := cartdomain.Find(items, dishID)
	if !ok || line.RemoteID == "" {
		slog.Debug("cart line not found remotely", slog.String("sessionId", sessionID), slog.String("dishId", dishID))
		return "", false, nil
	}
	return line.RemoteID, true, nil
}

// rollback discards the optimistic change by reloading the backend cart, then reports cause.
// If the reload fails as well the last refreshed cart is restored.
func (c *CartSync) rollback(ctx context.Context, operation, sessionID string, cause error) error {
	slog.Warn("cart mutation failed, resynchronizing", slog.String("operation", operation), slog.String("sessionId", sessionID), slog.Any("error", cause))
	if err := c.refresh(ctx, sessionID); err != nil {
		slog.Error("cart resynchronization failed", slog.String("operation", operation), slog.Any("error", err))
		c.confirmedMu.Lock()
		confirmed := cloneSlice(c.confirmed)
		c.confirmedMu.Unlock()
		c.apply(func([]cartdomain.CartItem) []cartdomain.CartItem { return confirmed })
		c.notify(ctx, domain.ActionUpdated, sessionID)
	}
	return fmt.Errorf("cart %s: %w", operation, cause)
}

func (c *CartSync) sessionID() (string, error) {
	if c.identity == nil {
		return "", port.ErrMissingSession
	}
	id, err := c.identity.SessionID()
	if err != nil {
		return "", fmt.Errorf("%w: %v", port.ErrMissingSession, err)
	}
	return id, nil
}

func (c *CartSync) notify(ctx context.Context, action, sessionID string) {
	c.publish(ctx, action, "", map[string]any{
		"items":      c.Items(),
		"totalPrice": c.TotalPrice(),
		"totalItems": c.TotalItems(),
	}, map[string]string{"sessionId": sessionID})
}
