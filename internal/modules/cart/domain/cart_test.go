package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func item(dishID string, price string, quantity int) CartItem {
	return CartItem{DishID: dishID, Name: "dish " + dishID, Price: decimal.RequireFromString(price), Quantity: quantity}
}

func TestWithAdded(t *testing.T) {
	t.Parallel()

	var items []CartItem
	items = WithAdded(items, item("1", "4.50", 7))
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected new line with quantity 1, got %+v", items)
	}

	before := items
	items = WithAdded(items, item("1", "4.50", 0))
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %+v", items)
	}
	if before[0].Quantity != 1 {
		t.Fatal("expected input slice to stay untouched")
	}

	items = WithAdded(items, item("2", "1", 0))
	if len(items) != 2 || items[1].DishID != "2" {
		t.Fatalf("expected appended line, got %+v", items)
	}
}

func TestWithQuantity(t *testing.T) {
	t.Parallel()

	items := []CartItem{item("1", "2", 1), item("2", "3", 2)}

	updated := WithQuantity(items, "2", 5)
	if updated[1].Quantity != 5 || items[1].Quantity != 2 {
		t.Fatalf("unexpected update result: %+v (input %+v)", updated, items)
	}

	removed := WithQuantity(items, "1", 0)
	if _, ok := Find(removed, "1"); ok {
		t.Fatal("expected zero quantity to remove the line")
	}
	if len(Without(items, "1")) != len(removed) {
		t.Fatal("expected zero quantity to behave like removal")
	}

	unknown := WithQuantity(items, "9", 3)
	if len(unknown) != 2 || TotalItems(unknown) != 3 {
		t.Fatalf("expected unknown dish to be ignored, got %+v", unknown)
	}
}

func TestTotals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		items    []CartItem
		price    string
		quantity int
	}{
		{name: "empty", items: nil, price: "0", quantity: 0},
		{name: "single", items: []CartItem{item("1", "9.99", 3)}, price: "29.97", quantity: 3},
		{name: "mixed", items: []CartItem{item("1", "0.10", 3), item("2", "12.5", 2), item("3", "7", 1)}, price: "32.3", quantity: 6},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TotalPrice(tc.items); !got.Equal(decimal.RequireFromString(tc.price)) {
				t.Fatalf("expected total price %s, got %s", tc.price, got)
			}
			if got := TotalItems(tc.items); got != tc.quantity {
				t.Fatalf("expected total items %d, got %d", tc.quantity, got)
			}
		})
	}
}

func TestCartItemFromDTO_NestedDish(t *testing.T) {
	t.Parallel()

	var dto CartItemDTO
	raw := `{"id": 41, "dish_id": 7, "quantity": 2, "dish": {"name": "Ramen", "price": "11.90", "restaurant_id": 3}}`
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	got := CartItemFromDTO(dto)
	if got.DishID != "7" || got.RemoteID != "41" {
		t.Fatalf("unexpected ids: %+v", got)
	}
	if got.Name != "Ramen" || got.RestaurantID != "3" {
		t.Fatalf("expected nested dish fields, got %+v", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("11.9")) {
		t.Fatalf("unexpected price: %s", got.Price)
	}
}

func TestCartItemToDTO(t *testing.T) {
	t.Parallel()

	dto := CartItemToDTO(CartItem{DishID: "7", RemoteID: "41", Quantity: 3}, "session-1")
	if dto.DishID != 7 || dto.ID != 41 || dto.Quantity != 3 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.SessionID == nil || *dto.SessionID != "session-1" {
		t.Fatalf("expected session id on payload, got %v", dto.SessionID)
	}
}
