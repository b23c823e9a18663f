package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	dishdomain "deliveryClient/internal/modules/dishes/domain"
	restaurantdomain "deliveryClient/internal/modules/restaurants/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/shared/normalization"
)

// Restaurants mirrors the restaurant collection and keeps the dish mirror free of orphans.
type Restaurants struct {
	*EntityCollection[restaurantdomain.Restaurant]
	dishes *Dishes
	now    func() time.Time
}

func NewRestaurants(gateway port.RestaurantGateway, dishes *Dishes, notifier port.Notifier) *Restaurants {
	return &Restaurants{
		EntityCollection: newEntityCollection[restaurantdomain.Restaurant](normalization.EntityRestaurants, gateway, notifier),
		dishes:           dishes,
		now:              time.Now,
	}
}

// Delete removes the restaurant remotely and then purges every locally cached dish that
// references it. The backend owns the actual cascade.
func (r *Restaurants) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := r.EntityCollection.Delete(ctx, id); err != nil {
		return err
	}
	if r.dishes != nil {
		if purged := r.dishes.purgeRestaurant(ctx, id); purged > 0 {
			slog.Info("dishes purged with restaurant", slog.String("restaurantId", id), slog.Int("count", purged))
		}
	}
	return nil
}

// Status resolves the open/closed label of a restaurant at the current instant.
func (r *Restaurants) Status(ctx context.Context, id string) (restaurantdomain.OpenStatus, error) {
	restaurant, err := r.Get(ctx, id)
	if err != nil {
		return restaurantdomain.OpenStatus{}, err
	}
	return restaurant.StatusAt(r.now()), nil
}

// OpenNow lists the restaurants currently accepting orders. Evaluated on every call.
func (r *Restaurants) OpenNow() []restaurantdomain.Restaurant {
	now := r.now()
	return r.Filter(func(item restaurantdomain.Restaurant) bool { return item.IsOpenNow(now) })
}

// Dishes mirrors the dish collection.
type Dishes struct {
	*EntityCollection[dishdomain.Dish]
}

func NewDishes(gateway port.DishGateway, notifier port.Notifier) *Dishes {
	return &Dishes{EntityCollection: newEntityCollection[dishdomain.Dish](normalization.EntityDishes, gateway, notifier)}
}

func (d *Dishes) ForRestaurant(restaurantID string) []dishdomain.Dish {
	return d.Filter(func(item dishdomain.Dish) bool { return item.RestaurantID == restaurantID })
}

func (d *Dishes) purgeRestaurant(ctx context.Context, restaurantID string) int {
	purged := d.removeWhere(func(item dishdomain.Dish) bool { return item.RestaurantID == restaurantID })
	if purged > 0 {
		d.publish(ctx, domain.ActionDeleted, "", nil, map[string]string{"restaurantId": restaurantID})
	}
	return purged
}
