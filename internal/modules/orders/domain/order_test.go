package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"pending":          OrderStatusPending,
		"Out for delivery": OrderStatusOutForDelivery,
		"picked-up":        OrderStatusOutForDelivery,
		"canceled":         OrderStatusCancelled,
		" ready ":          OrderStatusReady,
		"":                 OrderStatusUnknown,
		"refunded":         OrderStatus("REFUNDED"),
	}
	for input, expected := range cases {
		if got := NormalizeOrderStatus(input); got != expected {
			t.Fatalf("NormalizeOrderStatus(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{from: OrderStatusPending, to: OrderStatusConfirmed, allowed: true},
		{from: OrderStatusPending, to: OrderStatusDelivered, allowed: true},
		{from: OrderStatusPreparing, to: OrderStatusConfirmed, allowed: false},
		{from: OrderStatusReady, to: OrderStatusCancelled, allowed: true},
		{from: OrderStatusDelivered, to: OrderStatusCancelled, allowed: false},
		{from: OrderStatusCancelled, to: OrderStatusPending, allowed: false},
		{from: OrderStatusPending, to: OrderStatus("REFUNDED"), allowed: false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderStatusLabel(t *testing.T) {
	if got := OrderStatusOutForDelivery.Label(); got != "On the way" {
		t.Fatalf("unexpected label: %s", got)
	}
	if got := OrderStatus("REFUNDED_PARTIALLY").Label(); got != "refunded partially" {
		t.Fatalf("unexpected fallback label: %s", got)
	}
	if OrderStatusCancelled.Step() != -1 || OrderStatusDelivered.Step() != 5 {
		t.Fatal("unexpected steps")
	}
}

func TestOrderFromDTO_DerivesMissingTotal(t *testing.T) {
	var dto OrderDTO
	raw := `{"id": 10, "restaurant_id": 2, "items": [{"dish_id": 5, "quantity": 2, "price": "3.25"}, {"dish_id": 6, "quantity": 1, "price": 4}], "delivery_fee": 1.5}`
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	order := OrderFromDTO(dto)
	if order.Status != OrderStatusPending {
		t.Fatalf("expected default pending status, got %s", order.Status)
	}
	if !order.Total.Equal(decimal.RequireFromString("12")) {
		t.Fatalf("expected derived total 12, got %s", order.Total)
	}
	if len(order.Items) != 2 || order.Items[0].DishID != "5" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
}

func TestOrderToDTO(t *testing.T) {
	dto := OrderToDTO(Order{
		RestaurantID: "2",
		Items:        []OrderItem{{DishID: "5", Quantity: 3, Price: decimal.NewFromInt(2)}},
		Total:        decimal.NewFromInt(6),
		Status:       OrderStatusOutForDelivery,
	})
	if dto.Status == nil || *dto.Status != "out_for_delivery" {
		t.Fatalf("unexpected wire status: %v", dto.Status)
	}
	if dto.Items[0].DishID != 5 || dto.Items[0].Quantity != 3 {
		t.Fatalf("unexpected wire items: %+v", dto.Items)
	}
	if dto.ID != 0 {
		t.Fatalf("expected unassigned id, got %d", dto.ID)
	}
}
