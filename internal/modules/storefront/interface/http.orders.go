package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	orderdomain "deliveryClient/internal/modules/orders/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/application/usecase"
)

// requireSignedIn rejects anonymous visitors with the login route of their last known role.
func (h *Handler) requireSignedIn() error {
	if h.storefront.Identity.Authenticated() {
		return nil
	}
	return &port.UnauthorizedError{Redirect: h.storefront.Identity.LoginRoute()}
}

func (h *Handler) listOrders(c echo.Context) error {
	if err := h.requireSignedIn(); err != nil {
		return h.fail(c, "list orders", err)
	}
	orders := h.storefront.Orders
	filter := port.ListFilter{RestaurantID: strings.TrimSpace(c.QueryParam("restaurantId"))}
	if err := orders.Refresh(c.Request().Context(), filter); err != nil {
		return h.fail(c, "list orders", err)
	}
	if queryFlag(c, "active") {
		return c.JSON(http.StatusOK, newCollectionResponse(orders, orders.Active()))
	}
	return c.JSON(http.StatusOK, newCollectionResponse(orders, orders.Items()))
}

type placeOrderResponse struct {
	Order   orderdomain.Order `json:"order"`
	Warning string            `json:"warning,omitempty"`
}

func (h *Handler) placeOrder(c echo.Context) error {
	if err := h.requireSignedIn(); err != nil {
		return h.fail(c, "place order", err)
	}
	var input usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	input.DeliveryAddress = strings.TrimSpace(input.DeliveryAddress)
	if input.DeliveryAddress == "" {
		return h.badRequest(c, "deliveryAddress is required")
	}
	order, err := h.storefront.Checkout.PlaceOrder(c.Request().Context(), input)
	if err != nil && order.ID == "" {
		return h.fail(c, "place order", err)
	}
	resp := placeOrderResponse{Order: order}
	if err != nil {
		resp.Warning = err.Error()
	}
	return c.JSON(http.StatusCreated, resp)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(c echo.Context) error {
	if err := h.requireSignedIn(); err != nil {
		return h.fail(c, "update order status", err)
	}
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		return h.badRequest(c, "status is required")
	}
	updated, err := h.storefront.Orders.UpdateStatus(c.Request().Context(), c.Param("id"), orderdomain.NormalizeOrderStatus(req.Status))
	if err != nil {
		return h.fail(c, "update order status", err)
	}
	return c.JSON(http.StatusOK, updated)
}
