package normalization

import "strings"

// Canonical collection names shared by the REST endpoint table, kafka events and websocket topics.
const (
	EntityRestaurants = "restaurants"
	EntityDishes      = "dishes"
	EntityOrders      = "orders"
	EntityReviews     = "reviews"
	EntityCart        = "cart"
	EntityUsers       = "users"
)

var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	"restaurant":  EntityRestaurants,
	"restaurants": EntityRestaurants,
	"store":       EntityRestaurants,

	"dish":       EntityDishes,
	"dishes":     EntityDishes,
	"menu-item":  EntityDishes,
	"menu-items": EntityDishes,
	"menuitem":   EntityDishes,
	"menuitems":  EntityDishes,

	"order":          EntityOrders,
	"orders":         EntityOrders,
	"order-status":   EntityOrders,
	"delivery":       EntityOrders,
	"deliveries":     EntityOrders,
	"order-tracking": EntityOrders,

	"review":  EntityReviews,
	"reviews": EntityReviews,
	"rating":  EntityReviews,
	"ratings": EntityReviews,

	"cart":       EntityCart,
	"carts":      EntityCart,
	"cart-item":  EntityCart,
	"cart-items": EntityCart,
	"cartitem":   EntityCart,
	"cartitems":  EntityCart,

	"user":  EntityUsers,
	"users": EntityUsers,
	"auth":  EntityUsers,
	"rider": EntityUsers,
	"owner": EntityUsers,
}

// NormalizeEntity converts singular/plural names and "-"/"_" separators to the canonical
// collection name. Unknown names come back lowercased with underscores replaced.
//
//	NormalizeEntity("Restaurant") => "restaurants"
//	NormalizeEntity("MENU_ITEM")  => "dishes"
func NormalizeEntity(raw string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if canonical, ok := entityAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// IsValidEntity reports whether raw resolves to a known collection.
func IsValidEntity(raw string) bool {
	switch NormalizeEntity(raw) {
	case EntityRestaurants, EntityDishes, EntityOrders, EntityReviews, EntityCart, EntityUsers:
		return true
	default:
		return false
	}
}
