package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"deliveryClient/internal/shared/normalization"
)

// OrderItem is a dish line frozen at order time.
type OrderItem struct {
	DishID   string          `json:"dishId"`
	Name     string          `json:"name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Subtotal returns price × quantity for the line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the locally mirrored order record.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId,omitempty"`
	RestaurantID    string          `json:"restaurantId"`
	RiderID         string          `json:"riderId,omitempty"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	Status          OrderStatus     `json:"status"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (o Order) Key() string { return o.ID }

// ItemsTotal sums the item subtotals, excluding delivery fee.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderItemDTO is the REST representation of an order line.
type OrderItemDTO struct {
	DishID   int64           `json:"dish_id"`
	DishName *string         `json:"dish_name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderDTO is the REST representation of an order.
type OrderDTO struct {
	ID              int64               `json:"id,omitempty"`
	UserID          *int64              `json:"user_id,omitempty"`
	RestaurantID    int64               `json:"restaurant_id"`
	RiderID         *int64              `json:"rider_id,omitempty"`
	Items           []OrderItemDTO      `json:"items"`
	TotalAmount     decimal.NullDecimal `json:"total_amount"`
	DeliveryFee     decimal.NullDecimal `json:"delivery_fee"`
	Status          *string             `json:"status,omitempty"`
	DeliveryAddress *string             `json:"delivery_address,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	CreatedAt       *time.Time          `json:"created_at,omitempty"`
}

// OrderFromDTO maps a wire order into the domain. When the server omits the total it is
// derived from the items plus delivery fee.
func OrderFromDTO(dto OrderDTO) Order {
	o := Order{
		ID:              normalization.FormatID(dto.ID),
		UserID:          normalization.FormatOptionalID(dto.UserID),
		RestaurantID:    normalization.FormatID(dto.RestaurantID),
		RiderID:         normalization.FormatOptionalID(dto.RiderID),
		Items:           make([]OrderItem, 0, len(dto.Items)),
		Status:          NormalizeOrderStatus(normalization.Deref(dto.Status)),
		DeliveryAddress: normalization.Deref(dto.DeliveryAddress),
		Notes:           normalization.Deref(dto.Notes),
	}
	if o.Status == OrderStatusUnknown {
		o.Status = OrderStatusPending
	}
	for _, item := range dto.Items {
		o.Items = append(o.Items, OrderItem{
			DishID:   normalization.FormatID(item.DishID),
			Name:     normalization.Deref(item.DishName),
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	if dto.DeliveryFee.Valid {
		o.DeliveryFee = dto.DeliveryFee.Decimal
	}
	if dto.TotalAmount.Valid {
		o.Total = dto.TotalAmount.Decimal
	} else {
		o.Total = o.ItemsTotal().Add(o.DeliveryFee)
	}
	if dto.CreatedAt != nil {
		o.CreatedAt = dto.CreatedAt.UTC()
	}
	return o
}

// OrderToDTO builds the payload for create/update calls.
func OrderToDTO(o Order) OrderDTO {
	dto := OrderDTO{
		ID:              normalization.ParseID(o.ID),
		RestaurantID:    normalization.ParseID(o.RestaurantID),
		RiderID:         normalization.OptionalID(o.RiderID),
		Items:           make([]OrderItemDTO, 0, len(o.Items)),
		TotalAmount:     decimal.NewNullDecimal(o.Total),
		DeliveryFee:     decimal.NewNullDecimal(o.DeliveryFee),
		DeliveryAddress: normalization.Ref(o.DeliveryAddress),
		Notes:           normalization.Ref(o.Notes),
	}
	if o.Status != OrderStatusUnknown {
		dto.Status = normalization.Ref(o.Status.WireValue())
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			DishID:   normalization.ParseID(item.DishID),
			DishName: normalization.Ref(item.Name),
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return dto
}
