package port

import (
	"context"

	authdomain "deliveryClient/internal/modules/auth/domain"
	cartdomain "deliveryClient/internal/modules/cart/domain"
	dishdomain "deliveryClient/internal/modules/dishes/domain"
	orderdomain "deliveryClient/internal/modules/orders/domain"
	restaurantdomain "deliveryClient/internal/modules/restaurants/domain"
	reviewdomain "deliveryClient/internal/modules/reviews/domain"
)

// ListFilter narrows list calls to a parent record. Empty fields are ignored.
type ListFilter struct {
	RestaurantID string
	OwnerID      string
}

// EntityGateway is the remote CRUD contract shared by every mirrored collection.
type EntityGateway[T any] interface {
	List(ctx context.Context, filter ListFilter) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, id string) error
}

type (
	RestaurantGateway = EntityGateway[restaurantdomain.Restaurant]
	DishGateway       = EntityGateway[dishdomain.Dish]
	ReviewGateway     = EntityGateway[reviewdomain.Review]
)

// OrderGateway adds the status endpoint used by restaurant and rider dashboards.
type OrderGateway interface {
	EntityGateway[orderdomain.Order]
	UpdateStatus(ctx context.Context, id string, status orderdomain.OrderStatus) (orderdomain.Order, error)
}

// CartGateway reads and mutates the cart owned by a session. Item ids are the backend's line
// ids, not dish ids.
type CartGateway interface {
	List(ctx context.Context, sessionID string) ([]cartdomain.CartItem, error)
	AddItem(ctx context.Context, sessionID string, item cartdomain.CartItem) error
	UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) error
	DeleteItem(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}

type AuthGateway interface {
	Login(ctx context.Context, credentials authdomain.Credentials) (authdomain.LoginResult, error)
	Register(ctx context.Context, registration authdomain.Registration) (authdomain.LoginResult, error)
	CurrentUser(ctx context.Context) (authdomain.User, error)
}
