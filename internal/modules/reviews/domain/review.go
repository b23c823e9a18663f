package domain

import (
	"time"

	"deliveryClient/internal/shared/normalization"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer rating of a restaurant.
type Review struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	UserID       string    `json:"userId,omitempty"`
	UserName     string    `json:"userName,omitempty"`
	OrderID      string    `json:"orderId,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r Review) Key() string { return r.ID }

// ClampRating keeps a rating within the 1..5 star range.
func ClampRating(rating int) int {
	switch {
	case rating < MinRating:
		return MinRating
	case rating > MaxRating:
		return MaxRating
	default:
		return rating
	}
}

// ReviewDTO is the REST representation of a review.
type ReviewDTO struct {
	ID           int64      `json:"id,omitempty"`
	RestaurantID int64      `json:"restaurant_id"`
	UserID       *int64     `json:"user_id,omitempty"`
	UserName     *string    `json:"user_name,omitempty"`
	OrderID      *int64     `json:"order_id,omitempty"`
	Rating       int        `json:"rating"`
	Comment      *string    `json:"comment,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

func ReviewFromDTO(dto ReviewDTO) Review {
	r := Review{
		ID:           normalization.FormatID(dto.ID),
		RestaurantID: normalization.FormatID(dto.RestaurantID),
		UserID:       normalization.FormatOptionalID(dto.UserID),
		UserName:     normalization.Deref(dto.UserName),
		OrderID:      normalization.FormatOptionalID(dto.OrderID),
		Rating:       ClampRating(dto.Rating),
		Comment:      normalization.Deref(dto.Comment),
	}
	if dto.CreatedAt != nil {
		r.CreatedAt = dto.CreatedAt.UTC()
	}
	return r
}

// ReviewToDTO builds the create/update payload. Author and timestamps are assigned by the server.
func ReviewToDTO(r Review) ReviewDTO {
	return ReviewDTO{
		ID:           normalization.ParseID(r.ID),
		RestaurantID: normalization.ParseID(r.RestaurantID),
		OrderID:      normalization.OptionalID(r.OrderID),
		Rating:       ClampRating(r.Rating),
		Comment:      normalization.Ref(r.Comment),
	}
}
