package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	cartdomain "deliveryClient/internal/modules/cart/domain"
	orderdomain "deliveryClient/internal/modules/orders/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMixedRestaurants  = errors.New("cart holds dishes from more than one restaurant")
	ErrMissingRestaurant = errors.New("cart items carry no restaurant")
)

// PlaceOrderInput is what the customer adds on top of the cart when checking out.
type PlaceOrderInput struct {
	DeliveryAddress string `json:"deliveryAddress"`
	Notes           string `json:"notes,omitempty"`
}

// Checkout turns the current cart into an order.
type Checkout struct {
	cart        *CartSync
	orders      *Orders
	restaurants *Restaurants
}

func NewCheckout(cart *CartSync, orders *Orders, restaurants *Restaurants) *Checkout {
	return &Checkout{cart: cart, orders: orders, restaurants: restaurants}
}

// PlaceOrder creates the order remotely, adds it to the orders mirror and then empties the
// cart. A failed clear is returned alongside the placed order.
func (c *Checkout) PlaceOrder(ctx context.Context, input PlaceOrderInput) (orderdomain.Order, error) {
	items := c.cart.Items()
	order, err := c.buildOrder(items, input)
	if err != nil {
		return orderdomain.Order{}, err
	}

	created, err := c.orders.Create(ctx, order)
	if err != nil {
		return orderdomain.Order{}, fmt.Errorf("place order: %w", err)
	}
	slog.Info("order placed", slog.String("orderId", created.ID), slog.String("restaurantId", created.RestaurantID), slog.String("total", created.Total.String()))

	if err := c.cart.Clear(ctx); err != nil {
		return created, fmt.Errorf("order %s placed: %w", created.ID, err)
	}
	return created, nil
}

func (c *Checkout) buildOrder(items []cartdomain.CartItem, input PlaceOrderInput) (orderdomain.Order, error) {
	if len(items) == 0 {
		return orderdomain.Order{}, ErrEmptyCart
	}
	restaurantID := ""
	lines := make([]orderdomain.OrderItem, 0, len(items))
	for _, item := range items {
		switch {
		case item.RestaurantID == "":
		case restaurantID == "":
			restaurantID = item.RestaurantID
		case restaurantID != item.RestaurantID:
			return orderdomain.Order{}, ErrMixedRestaurants
		}
		lines = append(lines, orderdomain.OrderItem{
			DishID:   item.DishID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	if restaurantID == "" {
		return orderdomain.Order{}, ErrMissingRestaurant
	}

	fee := decimal.Zero
	if c.restaurants != nil {
		if restaurant, ok := c.restaurants.Find(restaurantID); ok {
			fee = restaurant.DeliveryFee
		}
	}
	order := orderdomain.Order{
		RestaurantID:    restaurantID,
		Items:           lines,
		DeliveryFee:     fee,
		Status:          orderdomain.OrderStatusPending,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Notes:           strings.TrimSpace(input.Notes),
	}
	order.Total = order.ItemsTotal().Add(fee)
	return order, nil
}
