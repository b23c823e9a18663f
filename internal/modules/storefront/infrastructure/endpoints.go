package infrastructure

import (
	"fmt"
	"net/url"
	"strings"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/shared/normalization"
)

type pathBuilder func(string) (string, error)

type entityEndpoint struct {
	listPathBuilder   pathBuilder
	detailPathBuilder pathBuilder
	// parentPathBuilder lists children of a restaurant when a RestaurantID filter is set.
	parentPathBuilder pathBuilder
	filterKeys        filterKeys
}

// filterKeys names the query parameters a list endpoint accepts for each ListFilter field.
type filterKeys struct {
	restaurantID string
	ownerID      string
}

var entityEndpoints = map[string]entityEndpoint{
	normalization.EntityRestaurants: {
		listPathBuilder:   staticPathBuilder("/api/restaurants"),
		detailPathBuilder: resourcePathBuilder("/api/restaurants"),
		filterKeys:        filterKeys{ownerID: "owner_id"},
	},
	normalization.EntityDishes: {
		listPathBuilder:   staticPathBuilder("/api/dishes"),
		detailPathBuilder: resourcePathBuilder("/api/dishes"),
		parentPathBuilder: requiredValuePathBuilder("/api/restaurants/%s/dishes"),
		filterKeys:        filterKeys{restaurantID: "restaurant_id"},
	},
	normalization.EntityOrders: {
		listPathBuilder:   staticPathBuilder("/api/orders"),
		detailPathBuilder: resourcePathBuilder("/api/orders"),
		filterKeys:        filterKeys{restaurantID: "restaurant_id"},
	},
	normalization.EntityReviews: {
		listPathBuilder:   staticPathBuilder("/api/reviews"),
		detailPathBuilder: resourcePathBuilder("/api/reviews"),
		parentPathBuilder: requiredValuePathBuilder("/api/restaurants/%s/reviews"),
		filterKeys:        filterKeys{restaurantID: "restaurant_id"},
	},
}

var (
	orderStatusPathBuilder = requiredValuePathBuilder("/api/orders/%s/status")
	cartSessionPathBuilder = requiredValuePathBuilder("/api/cart/session/%s")
	cartItemsPathBuilder   = staticPathBuilder("/api/cart/items")
	cartItemPathBuilder    = resourcePathBuilder("/api/cart/items")
	loginPathBuilder       = staticPathBuilder("/api/auth/login")
	registerPathBuilder    = staticPathBuilder("/api/auth/register")
	currentUserPathBuilder = staticPathBuilder("/api/auth/me")
)

func lookupEndpoint(entity string) (entityEndpoint, error) {
	endpoint, ok := entityEndpoints[normalization.NormalizeEntity(entity)]
	if !ok || endpoint.listPathBuilder == nil {
		return entityEndpoint{}, fmt.Errorf("entity %q: %w", entity, port.ErrUnsupported)
	}
	return endpoint, nil
}

// listRequest resolves the path and query for a filtered list call. A restaurant filter uses
// the nested route when the entity has one, otherwise a query parameter.
func (e entityEndpoint) listRequest(filter port.ListFilter) (string, url.Values, error) {
	query := url.Values{}
	restaurantID := strings.TrimSpace(filter.RestaurantID)
	if restaurantID != "" && e.parentPathBuilder != nil {
		path, err := e.parentPathBuilder(restaurantID)
		return path, query, err
	}
	path, err := e.listPathBuilder("")
	if err != nil {
		return "", nil, err
	}
	if restaurantID != "" && e.filterKeys.restaurantID != "" {
		query.Set(e.filterKeys.restaurantID, restaurantID)
	}
	if owner := strings.TrimSpace(filter.OwnerID); owner != "" && e.filterKeys.ownerID != "" {
		query.Set(e.filterKeys.ownerID, owner)
	}
	return path, query, nil
}

func staticPathBuilder(path string) pathBuilder {
	trimmed := strings.TrimSpace(path)
	return func(string) (string, error) {
		if trimmed == "" {
			return "", fmt.Errorf("missing path configuration")
		}
		return trimmed, nil
	}
}

func requiredValuePathBuilder(format string) pathBuilder {
	trimmed := strings.TrimSpace(format)
	return func(value string) (string, error) {
		identifier := strings.TrimSpace(value)
		if identifier == "" {
			return "", port.ErrNotFound
		}
		return fmt.Sprintf(trimmed, url.PathEscape(identifier)), nil
	}
}

func resourcePathBuilder(base string) pathBuilder {
	trimmed := strings.TrimSpace(base)
	return func(value string) (string, error) {
		identifier := strings.TrimSpace(value)
		if identifier == "" {
			return "", port.ErrNotFound
		}
		return strings.TrimRight(trimmed, "/") + "/" + url.PathEscape(identifier), nil
	}
}
