package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	cartdomain "deliveryClient/internal/modules/cart/domain"
	"deliveryClient/internal/modules/storefront/application/usecase"
)

type cartResponse struct {
	State      string                `json:"state"`
	Error      string                `json:"error,omitempty"`
	Items      []cartdomain.CartItem `json:"items"`
	TotalItems int                   `json:"totalItems"`
	TotalPrice decimal.Decimal       `json:"totalPrice"`
}

// cartSnapshot renders the current local cart. After a failed mutation this is the rolled
// back state.
func (h *Handler) cartSnapshot() cartResponse {
	cart := h.storefront.Cart
	items := cart.Items()
	resp := cartResponse{
		State:      cart.State().String(),
		Items:      items,
		TotalItems: cartdomain.TotalItems(items),
		TotalPrice: cartdomain.TotalPrice(items),
	}
	if err := cart.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func (h *Handler) getCart(c echo.Context) error {
	cart := h.storefront.Cart
	if cart.State() == usecase.StateUninitialized || queryFlag(c, "refresh") {
		if err := cart.Refresh(c.Request().Context()); err != nil && cart.Len() == 0 {
			return h.fail(c, "get cart", err)
		}
	}
	return c.JSON(http.StatusOK, h.cartSnapshot())
}

type addCartItemRequest struct {
	DishID string `json:"dishId"`
}

func (h *Handler) addCartItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	dishID := strings.TrimSpace(req.DishID)
	if dishID == "" {
		return h.badRequest(c, "dishId is required")
	}
	ctx := c.Request().Context()
	dish, err := h.storefront.Dishes.Get(ctx, dishID)
	if err != nil {
		return h.fail(c, "add cart item", err)
	}
	if err := h.storefront.Cart.Add(ctx, usecase.ItemFromDish(dish)); err != nil {
		return h.fail(c, "add cart item", err)
	}
	return c.JSON(http.StatusOK, h.cartSnapshot())
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) updateCartItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	if req.Quantity == nil {
		return h.badRequest(c, "quantity is required")
	}
	if err := h.storefront.Cart.UpdateQuantity(c.Request().Context(), c.Param("dishId"), *req.Quantity); err != nil {
		return h.fail(c, "update cart item", err)
	}
	return c.JSON(http.StatusOK, h.cartSnapshot())
}

func (h *Handler) removeCartItem(c echo.Context) error {
	if err := h.storefront.Cart.Remove(c.Request().Context(), c.Param("dishId")); err != nil {
		return h.fail(c, "remove cart item", err)
	}
	return c.JSON(http.StatusOK, h.cartSnapshot())
}

func (h *Handler) clearCart(c echo.Context) error {
	if err := h.storefront.Cart.Clear(c.Request().Context()); err != nil {
		return h.fail(c, "clear cart", err)
	}
	return c.JSON(http.StatusOK, h.cartSnapshot())
}
