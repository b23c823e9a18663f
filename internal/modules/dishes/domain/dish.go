package domain

import (
	"github.com/shopspring/decimal"

	"deliveryClient/internal/shared/normalization"
)

// Dish is a menu item offered by a restaurant.
type Dish struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurantId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Available    bool            `json:"available"`
}

func (d Dish) Key() string { return d.ID }

// DishDTO is the REST representation of a dish.
type DishDTO struct {
	ID           int64           `json:"id,omitempty"`
	RestaurantID int64           `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Category     *string         `json:"category,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	IsAvailable  *bool           `json:"is_available,omitempty"`
}

// DishFromDTO maps a wire dish into the domain. Dishes are available unless flagged otherwise.
func DishFromDTO(dto DishDTO) Dish {
	d := Dish{
		ID:           normalization.FormatID(dto.ID),
		RestaurantID: normalization.FormatID(dto.RestaurantID),
		Name:         dto.Name,
		Description:  normalization.Deref(dto.Description),
		Price:        dto.Price,
		Category:     normalization.Deref(dto.Category),
		ImageURL:     normalization.Deref(dto.ImageURL),
		Available:    true,
	}
	if dto.IsAvailable != nil {
		d.Available = *dto.IsAvailable
	}
	return d
}

func DishToDTO(d Dish) DishDTO {
	available := d.Available
	return DishDTO{
		ID:           normalization.ParseID(d.ID),
		RestaurantID: normalization.ParseID(d.RestaurantID),
		Name:         d.Name,
		Description:  normalization.Ref(d.Description),
		Price:        d.Price,
		Category:     normalization.Ref(d.Category),
		ImageURL:     normalization.Ref(d.ImageURL),
		IsAvailable:  &available,
	}
}
