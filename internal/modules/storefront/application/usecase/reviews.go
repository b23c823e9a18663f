package usecase

import (
	"context"
	"log/slog"

	reviewdomain "deliveryClient/internal/modules/reviews/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/shared/normalization"
)

// Reviews mirrors restaurant reviews. Every confirmed mutation reloads the restaurants so the
// server-computed rating aggregates stay in sync.
type Reviews struct {
	*EntityCollection[reviewdomain.Review]
	restaurants *Restaurants
}

func NewReviews(gateway port.ReviewGateway, restaurants *Restaurants, notifier port.Notifier) *Reviews {
	return &Reviews{
		EntityCollection: newEntityCollection[reviewdomain.Review](normalization.EntityReviews, gateway, notifier),
		restaurants:      restaurants,
	}
}

func (r *Reviews) ForRestaurant(restaurantID string) []reviewdomain.Review {
	return r.Filter(func(item reviewdomain.Review) bool { return item.RestaurantID == restaurantID })
}

func (r *Reviews) Create(ctx context.Context, review reviewdomain.Review) (reviewdomain.Review, error) {
	review.Rating = reviewdomain.ClampRating(review.Rating)
	created, err := r.EntityCollection.Create(ctx, review)
	if err != nil {
		return created, err
	}
	r.refreshRestaurants(ctx)
	return created, nil
}

func (r *Reviews) Update(ctx context.Context, review reviewdomain.Review) (reviewdomain.Review, error) {
	review.Rating = reviewdomain.ClampRating(review.Rating)
	updated, err := r.EntityCollection.Update(ctx, review)
	if err != nil {
		return updated, err
	}
	r.refreshRestaurants(ctx)
	return updated, nil
}

func (r *Reviews) Delete(ctx context.Context, id string) error {
	if err := r.EntityCollection.Delete(ctx, id); err != nil {
		return err
	}
	r.refreshRestaurants(ctx)
	return nil
}

// refreshRestaurants failures are recorded on the restaurant collection (Errored state).
func (r *Reviews) refreshRestaurants(ctx context.Context) {
	if r.restaurants == nil {
		return
	}
	if err := r.restaurants.Reload(ctx); err != nil {
		slog.Warn("restaurant refresh after review change failed", slog.Any("error", err))
	}
}
