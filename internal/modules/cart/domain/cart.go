package domain

import (
	"github.com/shopspring/decimal"

	"deliveryClient/internal/shared/normalization"
)

// CartItem is one cart line. Lines are keyed by dish; RemoteID is the backend's own id for
// the line and is only known after a refresh.
type CartItem struct {
	DishID       string          `json:"dishId"`
	RemoteID     string          `json:"-"`
	RestaurantID string          `json:"restaurantId,omitempty"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Quantity     int             `json:"quantity"`
}

func (i CartItem) Key() string { return i.DishID }

// Subtotal returns price × quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Find returns the line for dishID.
func Find(items []CartItem, dishID string) (CartItem, bool) {
	for _, item := range items {
		if item.DishID == dishID {
			return item, true
		}
	}
	return CartItem{}, false
}

// WithAdded returns the cart after adding one unit of item. An existing line for the same
// dish is incremented, otherwise a new line with quantity 1 is appended. The input slice is
// never modified.
func WithAdded(items []CartItem, item CartItem) []CartItem {
	next := make([]CartItem, 0, len(items)+1)
	found := false
	for _, existing := range items {
		if existing.DishID == item.DishID {
			existing.Quantity++
			found = true
		}
		next = append(next, existing)
	}
	if !found {
		item.Quantity = 1
		next = append(next, item)
	}
	return next
}

// Without returns the cart minus the line for dishID.
func Without(items []CartItem, dishID string) []CartItem {
	next := make([]CartItem, 0, len(items))
	for _, existing := range items {
		if existing.DishID != dishID {
			next = append(next, existing)
		}
	}
	return next
}

// WithQuantity overwrites the quantity of the line for dishID. Non-positive quantities
// remove the line.
func WithQuantity(items []CartItem, dishID string, quantity int) []CartItem {
	if quantity <= 0 {
		return Without(items, dishID)
	}
	next := make([]CartItem, len(items))
	copy(next, items)
	for idx := range next {
		if next[idx].DishID == dishID {
			next[idx].Quantity = quantity
		}
	}
	return next
}

// TotalPrice is Σ(price × quantity).
func TotalPrice(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalItems is Σ(quantity).
func TotalItems(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// CartItemDTO is the REST representation of a cart line. The backend embeds the dish
// snapshot either inline or under "dish".
type CartItemDTO struct {
	ID           int64               `json:"id,omitempty"`
	SessionID    *string             `json:"session_id,omitempty"`
	DishID       int64               `json:"dish_id"`
	Quantity     int                 `json:"quantity"`
	DishName     *string             `json:"dish_name,omitempty"`
	Price        decimal.NullDecimal `json:"price"`
	RestaurantID *int64              `json:"restaurant_id,omitempty"`
	ImageURL     *string             `json:"image_url,omitempty"`
	Dish         *CartDishDTO        `json:"dish,omitempty"`
}

// CartDishDTO is the nested dish snapshot some cart endpoints return.
type CartDishDTO struct {
	Name         string              `json:"name"`
	Price        decimal.NullDecimal `json:"price"`
	RestaurantID int64               `json:"restaurant_id"`
	ImageURL     *string             `json:"image_url,omitempty"`
}

// CartItemFromDTO maps a wire line into the domain, preferring inline fields over the nested dish.
func CartItemFromDTO(dto CartItemDTO) CartItem {
	item := CartItem{
		DishID:       normalization.FormatID(dto.DishID),
		RemoteID:     normalization.FormatID(dto.ID),
		RestaurantID: normalization.FormatOptionalID(dto.RestaurantID),
		Name:         normalization.Deref(dto.DishName),
		ImageURL:     normalization.Deref(dto.ImageURL),
		Quantity:     dto.Quantity,
	}
	if dto.Price.Valid {
		item.Price = dto.Price.Decimal
	}
	if dish := dto.Dish; dish != nil {
		if item.Name == "" {
			item.Name = dish.Name
		}
		if !dto.Price.Valid && dish.Price.Valid {
			item.Price = dish.Price.Decimal
		}
		if item.RestaurantID == "" {
			item.RestaurantID = normalization.FormatID(dish.RestaurantID)
		}
		if item.ImageURL == "" {
			item.ImageURL = normalization.Deref(dish.ImageURL)
		}
	}
	return item
}

// CartItemToDTO builds the add/update payload for a line owned by sessionID.
func CartItemToDTO(item CartItem, sessionID string) CartItemDTO {
	return CartItemDTO{
		ID:        normalization.ParseID(item.RemoteID),
		SessionID: normalization.Ref(sessionID),
		DishID:    normalization.ParseID(item.DishID),
		Quantity:  item.Quantity,
		Price:     decimal.NewNullDecimal(item.Price),
	}
}
