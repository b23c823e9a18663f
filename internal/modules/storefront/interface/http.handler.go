package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/application/usecase"
	"deliveryClient/internal/modules/storefront/infrastructure"
	"deliveryClient/internal/shared/auth"
	"deliveryClient/internal/shared/httputil"
)

// ClaimsReader exposes the decoded claims of the held token.
type ClaimsReader interface {
	Claims() *auth.Claims
}

// Handler serves the local HTTP and websocket surface over one visitor's Storefront.
type Handler struct {
	storefront     *usecase.Storefront
	hub            *infrastructure.Hub
	claims         ClaimsReader
	mapper         *httputil.ErrorMapper
	allowedActions []string
	sendBuffer     int
}

type Options struct {
	Claims         ClaimsReader
	AllowedActions []string
	SendBuffer     int
}

func NewHandler(storefront *usecase.Storefront, hub *infrastructure.Hub, opts Options) *Handler {
	return &Handler{
		storefront:     storefront,
		hub:            hub,
		claims:         opts.Claims,
		mapper:         NewErrorMapper(),
		allowedActions: opts.AllowedActions,
		sendBuffer:     opts.SendBuffer,
	}
}

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.health)

	api := e.Group("/api", h.adoptBearerToken)
	api.GET("/restaurants", h.listRestaurants)
	api.GET("/restaurants/:id", h.getRestaurant)
	api.GET("/restaurants/:id/status", h.restaurantStatus)
	api.GET("/restaurants/:id/dishes", h.restaurantDishes)
	api.GET("/restaurants/:id/reviews", h.restaurantReviews)
	api.POST("/restaurants/:id/reviews", h.createReview)
	api.PUT("/reviews/:id", h.updateReview)
	api.DELETE("/reviews/:id", h.deleteReview)

	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addCartItem)
	api.PATCH("/cart/items/:dishId", h.updateCartItem)
	api.DELETE("/cart/items/:dishId", h.removeCartItem)
	api.DELETE("/cart", h.clearCart)

	api.GET("/orders", h.listOrders)
	api.POST("/orders", h.placeOrder)
	api.PATCH("/orders/:id/status", h.updateOrderStatus)

	api.POST("/auth/login", h.login)
	api.POST("/auth/register", h.register)
	api.POST("/auth/logout", h.logout)
	api.GET("/auth/me", h.currentUser)

	e.GET("/ws/updates", h.updatesWebsocket, h.adoptBearerToken)
}

// NewErrorMapper maps storefront errors onto HTTP responses.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithResolver(func(err error) (httputil.HTTPErrorInfo, bool) {
			var unauthorized *port.UnauthorizedError
			if errors.As(err, &unauthorized) {
				return httputil.HTTPErrorInfo{Status: http.StatusUnauthorized, Message: "unauthorized", Redirect: unauthorized.Redirect}, true
			}
			return httputil.HTTPErrorInfo{}, false
		}).
		WithResolver(func(err error) (httputil.HTTPErrorInfo, bool) {
			if errors.Is(err, port.ErrPendingApproval) {
				return httputil.HTTPErrorInfo{Status: http.StatusForbidden, Message: "account pending approval", Code: "pendingApproval"}, true
			}
			return httputil.HTTPErrorInfo{}, false
		}).
		WithResolver(func(err error) (httputil.HTTPErrorInfo, bool) {
			var remote *port.RemoteError
			if errors.As(err, &remote) {
				message := remote.Message
				if message == "" {
					message = "backend request failed"
				}
				return httputil.HTTPErrorInfo{Status: http.StatusBadGateway, Message: message}, true
			}
			return httputil.HTTPErrorInfo{}, false
		}).
		WithMapping(port.ErrUnauthorized, http.StatusUnauthorized, "unauthorized").
		WithMapping(port.ErrForbidden, http.StatusForbidden, "forbidden").
		WithMapping(port.ErrNotFound, http.StatusNotFound, "not found").
		WithMapping(port.ErrUnsupported, http.StatusNotFound, "unsupported").
		WithMapping(port.ErrMissingSession, http.StatusBadRequest, "missing session").
		WithMapping(port.ErrInvalidTransition, http.StatusConflict, "invalid order status transition").
		WithMapping(usecase.ErrEmptyCart, http.StatusUnprocessableEntity, "cart is empty").
		WithMapping(usecase.ErrMixedRestaurants, http.StatusUnprocessableEntity, "cart holds dishes from more than one restaurant").
		WithMapping(usecase.ErrMissingRestaurant, http.StatusUnprocessableEntity, "cart items carry no restaurant").
		WithMapping(port.ErrRemote, http.StatusBadGateway, "backend request failed")
}

// fail logs err and writes the mapped JSON error body.
func (h *Handler) fail(c echo.Context, operation string, err error) error {
	info := h.mapper.Map(err)
	attrs := []any{slog.String("operation", operation), slog.Int("status", info.Status), slog.Any("error", err)}
	if info.Status >= http.StatusInternalServerError {
		slog.Error("http request failed", attrs...)
	} else {
		slog.Warn("http request rejected", attrs...)
	}
	return c.JSON(info.Status, info)
}

func (h *Handler) badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, httputil.HTTPErrorInfo{Status: http.StatusBadRequest, Message: message})
}

// adoptBearerToken stores a token presented by the browser when it differs from the one
// already held. Browsers cannot set headers on websocket upgrades, so ?token= is accepted too.
func (h *Handler) adoptBearerToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := auth.ExtractToken(c.Request(), "token")
		if token != "" {
			current, _ := h.storefront.Identity.Token()
			if current != token {
				if err := h.storefront.Accounts.AdoptToken(token); err != nil {
					return h.fail(c, "adopt token", err)
				}
			}
		}
		return next(c)
	}
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":        "ok",
		"authenticated": h.storefront.Identity.Authenticated(),
		"restaurants":   h.storefront.Restaurants.State().String(),
		"dishes":        h.storefront.Dishes.State().String(),
		"cart":          h.storefront.Cart.State().String(),
		"wsClients":     h.hub.ClientCount(),
	})
}

// collectionResponse exposes the load state next to the items so callers can tell an empty
// collection from one that failed to load.
type collectionResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
	Items any    `json:"items"`
}

type collectionView interface {
	State() usecase.CollectionState
	Err() error
}

func newCollectionResponse(view collectionView, items any) collectionResponse {
	resp := collectionResponse{State: view.State().String(), Items: items}
	if err := view.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func queryFlag(c echo.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.QueryParam(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
