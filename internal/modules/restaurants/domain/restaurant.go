package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"deliveryClient/internal/shared/normalization"
)

// Restaurant is the locally mirrored restaurant record.
type Restaurant struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"ownerId,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Address      string          `json:"address,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Cuisine      string          `json:"cuisine,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Rating       float64         `json:"rating"`
	ReviewCount  int             `json:"reviewCount"`
	DeliveryTime string          `json:"deliveryTime,omitempty"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	MinimumOrder decimal.Decimal `json:"minimumOrder"`
	IsOpen       bool            `json:"isOpen"`
	Hours        WeeklySchedule  `json:"hours,omitempty"`
	Status       ApprovalStatus  `json:"status,omitempty"`
}

// Key identifies the restaurant inside a local collection.
func (r Restaurant) Key() string { return r.ID }

// IsOpenNow applies the opening-hours resolver to this restaurant.
func (r Restaurant) IsOpenNow(now time.Time) bool {
	return IsOpenNow(r.IsOpen, r.Hours, now)
}

// StatusAt returns the status label for this restaurant.
func (r Restaurant) StatusAt(now time.Time) OpenStatus {
	return ResolveStatus(r.IsOpen, r.Hours, now)
}

// RestaurantDTO is the REST representation of a restaurant.
type RestaurantDTO struct {
	ID           int64               `json:"id,omitempty"`
	OwnerID      *int64              `json:"owner_id,omitempty"`
	Name         string              `json:"name"`
	Description  *string             `json:"description,omitempty"`
	Address      *string             `json:"address,omitempty"`
	Phone        *string             `json:"phone,omitempty"`
	CuisineType  *string             `json:"cuisine_type,omitempty"`
	ImageURL     *string             `json:"image_url,omitempty"`
	Rating       *float64            `json:"rating,omitempty"`
	TotalReviews *int                `json:"total_reviews,omitempty"`
	DeliveryTime *string             `json:"delivery_time,omitempty"`
	DeliveryFee  decimal.NullDecimal `json:"delivery_fee"`
	MinOrder     decimal.NullDecimal `json:"min_order"`
	IsOpen       *bool               `json:"is_open,omitempty"`
	OpeningHours map[string]string   `json:"opening_hours,omitempty"`
	Status       *string             `json:"status,omitempty"`
}

// RestaurantFromDTO maps the wire record into the domain. A missing is_open flag means the
// schedule alone decides.
func RestaurantFromDTO(dto RestaurantDTO) Restaurant {
	r := Restaurant{
		ID:           normalization.FormatID(dto.ID),
		OwnerID:      normalization.FormatOptionalID(dto.OwnerID),
		Name:         dto.Name,
		Description:  normalization.Deref(dto.Description),
		Address:      normalization.Deref(dto.Address),
		Phone:        normalization.Deref(dto.Phone),
		Cuisine:      normalization.Deref(dto.CuisineType),
		ImageURL:     normalization.Deref(dto.ImageURL),
		DeliveryTime: normalization.Deref(dto.DeliveryTime),
		IsOpen:       true,
		Hours:        ScheduleFromWire(dto.OpeningHours),
		Status:       NormalizeApprovalStatus(normalization.Deref(dto.Status)),
	}
	if dto.Rating != nil {
		r.Rating = *dto.Rating
	}
	if dto.TotalReviews != nil {
		r.ReviewCount = *dto.TotalReviews
	}
	if dto.DeliveryFee.Valid {
		r.DeliveryFee = dto.DeliveryFee.Decimal
	}
	if dto.MinOrder.Valid {
		r.MinimumOrder = dto.MinOrder.Decimal
	}
	if dto.IsOpen != nil {
		r.IsOpen = *dto.IsOpen
	}
	return r
}

// RestaurantToDTO maps a domain restaurant into the payload used for create/update calls.
// Server-computed aggregates (rating, review count) are not sent.
func RestaurantToDTO(r Restaurant) RestaurantDTO {
	isOpen := r.IsOpen
	dto := RestaurantDTO{
		ID:           normalization.ParseID(r.ID),
		OwnerID:      normalization.OptionalID(r.OwnerID),
		Name:         r.Name,
		Description:  normalization.Ref(r.Description),
		Address:      normalization.Ref(r.Address),
		Phone:        normalization.Ref(r.Phone),
		CuisineType:  normalization.Ref(r.Cuisine),
		ImageURL:     normalization.Ref(r.ImageURL),
		DeliveryTime: normalization.Ref(r.DeliveryTime),
		DeliveryFee:  decimal.NewNullDecimal(r.DeliveryFee),
		MinOrder:     decimal.NewNullDecimal(r.MinimumOrder),
		IsOpen:       &isOpen,
		OpeningHours: ScheduleToWire(r.Hours),
	}
	if r.Status != ApprovalStatusUnknown {
		dto.Status = normalization.Ref(r.Status.WireValue())
	}
	return dto
}

// ScheduleFromWire converts {"monday": "09:00-22:00", ...} into a WeeklySchedule, dropping
// unknown day keys and blank entries.
func ScheduleFromWire(raw map[string]string) WeeklySchedule {
	if len(raw) == 0 {
		return nil
	}
	schedule := make(WeeklySchedule, len(raw))
	for key, value := range raw {
		day := NormalizeDay(key)
		if day == "" {
			continue
		}
		if trimmed := normalization.AsString(value); trimmed != "" {
			schedule[day] = trimmed
		}
	}
	if len(schedule) == 0 {
		return nil
	}
	return schedule
}

// ScheduleToWire is the inverse of ScheduleFromWire.
func ScheduleToWire(schedule WeeklySchedule) map[string]string {
	if len(schedule) == 0 {
		return nil
	}
	raw := make(map[string]string, len(schedule))
	for day, value := range schedule {
		raw[day.WireKey()] = value
	}
	return raw
}
