package infrastructure

import (
	"context"
	"net/http"
	"strings"

	cartdomain "deliveryClient/internal/modules/cart/domain"
	"deliveryClient/internal/modules/storefront/application/port"
)

// CartHTTPGateway talks to the session-scoped cart endpoints.
type CartHTTPGateway struct {
	rest *RESTClient
}

func NewCartGateway(rest *RESTClient) *CartHTTPGateway {
	return &CartHTTPGateway{rest: rest}
}

func (g *CartHTTPGateway) List(ctx context.Context, sessionID string) ([]cartdomain.CartItem, error) {
	path, err := cartPath(sessionID)
	if err != nil {
		return nil, err
	}
	var dtos []cartdomain.CartItemDTO
	if err := g.rest.call(ctx, callOptions{operation: "cart list", method: http.MethodGet, path: path, sessionID: sessionID}, &dtos); err != nil {
		return nil, err
	}
	items := make([]cartdomain.CartItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, cartdomain.CartItemFromDTO(dto))
	}
	return items, nil
}

func (g *CartHTTPGateway) AddItem(ctx context.Context, sessionID string, item cartdomain.CartItem) error {
	if strings.TrimSpace(sessionID) == "" {
		return port.ErrMissingSession
	}
	path, err := cartItemsPathBuilder("")
	if err != nil {
		return err
	}
	item.RemoteID = ""
	return g.rest.call(ctx, callOptions{operation: "cart add", method: http.MethodPost, path: path, body: cartdomain.CartItemToDTO(item, sessionID), sessionID: sessionID}, nil)
}

func (g *CartHTTPGateway) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) error {
	if strings.TrimSpace(sessionID) == "" {
		return port.ErrMissingSession
	}
	path, err := cartItemPathBuilder(itemID)
	if err != nil {
		return err
	}
	payload := map[string]int{"quantity": quantity}
	return g.rest.call(ctx, callOptions{operation: "cart update", method: http.MethodPut, path: path, body: payload, sessionID: sessionID}, nil)
}

func (g *CartHTTPGateway) DeleteItem(ctx context.Context, sessionID, itemID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return port.ErrMissingSession
	}
	path, err := cartItemPathBuilder(itemID)
	if err != nil {
		return err
	}
	return g.rest.call(ctx, callOptions{operation: "cart delete", method: http.MethodDelete, path: path, sessionID: sessionID}, nil)
}

func (g *CartHTTPGateway) Clear(ctx context.Context, sessionID string) error {
	path, err := cartPath(sessionID)
	if err != nil {
		return err
	}
	return g.rest.call(ctx, callOptions{operation: "cart clear", method: http.MethodDelete, path: path, sessionID: sessionID}, nil)
}

func cartPath(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", port.ErrMissingSession
	}
	return cartSessionPathBuilder(sessionID)
}

var _ port.CartGateway = (*CartHTTPGateway)(nil)
