package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/shared/normalization"
)

// Storefront groups the mirrored collections of one visitor.
type Storefront struct {
	Identity    *Identity
	Restaurants *Restaurants
	Dishes      *Dishes
	Orders      *Orders
	Reviews     *Reviews
	Cart        *CartSync
	Accounts    *Accounts
	Checkout    *Checkout
}

// Gateways are the remote collaborators of a Storefront.
type Gateways struct {
	Restaurants port.RestaurantGateway
	Dishes      port.DishGateway
	Orders      port.OrderGateway
	Reviews     port.ReviewGateway
	Cart        port.CartGateway
	Auth        port.AuthGateway
}

func NewStorefront(identity *Identity, gateways Gateways, notifier port.Notifier) *Storefront {
	dishes := NewDishes(gateways.Dishes, notifier)
	restaurants := NewRestaurants(gateways.Restaurants, dishes, notifier)
	orders := NewOrders(gateways.Orders, notifier)
	cart := NewCartSync(gateways.Cart, identity, notifier)
	return &Storefront{
		Identity:    identity,
		Restaurants: restaurants,
		Dishes:      dishes,
		Orders:      orders,
		Reviews:     NewReviews(gateways.Reviews, restaurants, notifier),
		Cart:        cart,
		Accounts:    NewAccounts(gateways.Auth, identity, cart, orders),
		Checkout:    NewCheckout(cart, orders, restaurants),
	}
}

// LoadAll performs the initial load of every collection concurrently. Orders are only loaded
// for signed-in visitors.
func (s *Storefront) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Restaurants.Refresh(gctx, port.ListFilter{}) })
	g.Go(func() error { return s.Dishes.Refresh(gctx, port.ListFilter{}) })
	g.Go(func() error { return s.Cart.Refresh(gctx) })
	if s.Identity.Authenticated() {
		g.Go(func() error { return s.Orders.Refresh(gctx, port.ListFilter{}) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	slog.Info("storefront loaded", slog.Int("restaurants", s.Restaurants.Len()), slog.Int("dishes", s.Dishes.Len()), slog.Int("cartLines", s.Cart.Len()))
	return nil
}

// RefreshEntity reloads the collection named by entity with its last filter. Unknown
// entities return ErrUnsupported.
func (s *Storefront) RefreshEntity(ctx context.Context, entity string) error {
	switch normalization.NormalizeEntity(entity) {
	case normalization.EntityRestaurants:
		return s.Restaurants.Reload(ctx)
	case normalization.EntityDishes:
		return s.Dishes.Reload(ctx)
	case normalization.EntityOrders:
		if !s.Identity.Authenticated() {
			return nil
		}
		return s.Orders.Reload(ctx)
	case normalization.EntityReviews:
		if err := s.Reviews.Reload(ctx); err != nil {
			return err
		}
		return s.Restaurants.Reload(ctx)
	case normalization.EntityCart:
		return s.Cart.Refresh(ctx)
	default:
		return fmt.Errorf("refresh %q: %w", entity, port.ErrUnsupported)
	}
}
