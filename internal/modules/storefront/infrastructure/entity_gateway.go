package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	dishdomain "deliveryClient/internal/modules/dishes/domain"
	orderdomain "deliveryClient/internal/modules/orders/domain"
	restaurantdomain "deliveryClient/internal/modules/restaurants/domain"
	reviewdomain "deliveryClient/internal/modules/reviews/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/shared/normalization"
)

// EntityHTTPGateway implements port.EntityGateway for one REST collection, mapping between
// the wire DTO D and the domain record T.
type EntityHTTPGateway[T interface{ Key() string }, D any] struct {
	rest     *RESTClient
	entity   string
	endpoint entityEndpoint
	fromDTO  func(D) T
	toDTO    func(T) D
}

func newEntityGateway[T interface{ Key() string }, D any](rest *RESTClient, entity string, fromDTO func(D) T, toDTO func(T) D) *EntityHTTPGateway[T, D] {
	endpoint, err := lookupEndpoint(entity)
	if err != nil {
		// The table is static; a miss is a programming error.
		panic(err)
	}
	return &EntityHTTPGateway[T, D]{rest: rest, entity: entity, endpoint: endpoint, fromDTO: fromDTO, toDTO: toDTO}
}

func NewRestaurantGateway(rest *RESTClient) *EntityHTTPGateway[restaurantdomain.Restaurant, restaurantdomain.RestaurantDTO] {
	return newEntityGateway(rest, normalization.EntityRestaurants, restaurantdomain.RestaurantFromDTO, restaurantdomain.RestaurantToDTO)
}

func NewDishGateway(rest *RESTClient) *EntityHTTPGateway[dishdomain.Dish, dishdomain.DishDTO] {
	return newEntityGateway(rest, normalization.EntityDishes, dishdomain.DishFromDTO, dishdomain.DishToDTO)
}

func NewReviewGateway(rest *RESTClient) *EntityHTTPGateway[reviewdomain.Review, reviewdomain.ReviewDTO] {
	return newEntityGateway(rest, normalization.EntityReviews, reviewdomain.ReviewFromDTO, reviewdomain.ReviewToDTO)
}

func (g *EntityHTTPGateway[T, D]) List(ctx context.Context, filter port.ListFilter) ([]T, error) {
	path, query, err := g.endpoint.listRequest(filter)
	if err != nil {
		slog.Warn("list path build failed", slog.String("entity", g.entity), slog.Any("error", err))
		return nil, err
	}
	var dtos []D
	if err := g.rest.call(ctx, callOptions{operation: g.entity + " list", method: http.MethodGet, path: path, query: query}, &dtos); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, g.fromDTO(dto))
	}
	return items, nil
}

func (g *EntityHTTPGateway[T, D]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	path, err := g.endpoint.detailPathBuilder(id)
	if err != nil {
		return zero, err
	}
	var dto D
	if err := g.rest.call(ctx, callOptions{operation: g.entity + " get", method: http.MethodGet, path: path}, &dto); err != nil {
		return zero, err
	}
	return g.fromDTO(dto), nil
}

func (g *EntityHTTPGateway[T, D]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	path, err := g.endpoint.listPathBuilder("")
	if err != nil {
		return zero, err
	}
	var dto D
	if err := g.rest.call(ctx, callOptions{operation: g.entity + " create", method: http.MethodPost, path: path, body: g.toDTO(entity)}, &dto); err != nil {
		return zero, err
	}
	created := g.fromDTO(dto)
	if strings.TrimSpace(created.Key()) == "" {
		return zero, fmt.Errorf("%s create: backend returned no id: %w", g.entity, port.ErrRemote)
	}
	return created, nil
}

func (g *EntityHTTPGateway[T, D]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	path, err := g.endpoint.detailPathBuilder(entity.Key())
	if err != nil {
		return zero, err
	}
	var dto D
	if err := g.rest.call(ctx, callOptions{operation: g.entity + " update", method: http.MethodPut, path: path, body: g.toDTO(entity)}, &dto); err != nil {
		return zero, err
	}
	updated := g.fromDTO(dto)
	if strings.TrimSpace(updated.Key()) == "" {
		// Some endpoints answer with an acknowledgement only.
		return entity, nil
	}
	return updated, nil
}

func (g *EntityHTTPGateway[T, D]) Delete(ctx context.Context, id string) error {
	path, err := g.endpoint.detailPathBuilder(id)
	if err != nil {
		return err
	}
	return g.rest.call(ctx, callOptions{operation: g.entity + " delete", method: http.MethodDelete, path: path}, nil)
}

// OrderHTTPGateway adds the status endpoint to the order collection.
type OrderHTTPGateway struct {
	*EntityHTTPGateway[orderdomain.Order, orderdomain.OrderDTO]
}

func NewOrderGateway(rest *RESTClient) *OrderHTTPGateway {
	return &OrderHTTPGateway{newEntityGateway(rest, normalization.EntityOrders, orderdomain.OrderFromDTO, orderdomain.OrderToDTO)}
}

func (g *OrderHTTPGateway) UpdateStatus(ctx context.Context, id string, status orderdomain.OrderStatus) (orderdomain.Order, error) {
	path, err := orderStatusPathBuilder(id)
	if err != nil {
		return orderdomain.Order{}, err
	}
	payload := map[string]string{"status": status.WireValue()}
	var dto orderdomain.OrderDTO
	if err := g.rest.call(ctx, callOptions{operation: "order status", method: http.MethodPatch, path: path, body: payload}, &dto); err != nil {
		return orderdomain.Order{}, err
	}
	updated := orderdomain.OrderFromDTO(dto)
	if strings.TrimSpace(updated.ID) == "" {
		// Acknowledgement only; the caller merges the status into its copy.
		return orderdomain.Order{Status: status}, nil
	}
	return updated, nil
}

var (
	_ port.RestaurantGateway = (*EntityHTTPGateway[restaurantdomain.Restaurant, restaurantdomain.RestaurantDTO])(nil)
	_ port.DishGateway       = (*EntityHTTPGateway[dishdomain.Dish, dishdomain.DishDTO])(nil)
	_ port.ReviewGateway     = (*EntityHTTPGateway[reviewdomain.Review, reviewdomain.ReviewDTO])(nil)
	_ port.OrderGateway      = (*OrderHTTPGateway)(nil)
)
