package domain

import "strings"

// OrderStatus represents the lifecycle of an order as exposed by the REST API.
type OrderStatus string

const (
	OrderStatusUnknown        OrderStatus = ""
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

var allowedOrderStatuses = map[string]OrderStatus{
	string(OrderStatusPending):        OrderStatusPending,
	string(OrderStatusConfirmed):      OrderStatusConfirmed,
	string(OrderStatusPreparing):      OrderStatusPreparing,
	string(OrderStatusReady):          OrderStatusReady,
	"READY_FOR_PICKUP":                OrderStatusReady,
	string(OrderStatusOutForDelivery): OrderStatusOutForDelivery,
	"PICKED_UP":                       OrderStatusOutForDelivery,
	"ON_THE_WAY":                      OrderStatusOutForDelivery,
	string(OrderStatusDelivered):      OrderStatusDelivered,
	string(OrderStatusCancelled):      OrderStatusCancelled,
	"CANCELED":                        OrderStatusCancelled,
}

var orderSteps = map[OrderStatus]int{
	OrderStatusPending:        0,
	OrderStatusConfirmed:      1,
	OrderStatusPreparing:      2,
	OrderStatusReady:          3,
	OrderStatusOutForDelivery: 4,
	OrderStatusDelivered:      5,
}

var orderLabels = map[OrderStatus]string{
	OrderStatusPending:        "Order placed",
	OrderStatusConfirmed:      "Confirmed by restaurant",
	OrderStatusPreparing:      "Being prepared",
	OrderStatusReady:          "Ready for pickup",
	OrderStatusOutForDelivery: "On the way",
	OrderStatusDelivered:      "Delivered",
	OrderStatusCancelled:      "Cancelled",
}

// NormalizeOrderStatus returns the canonical status for a wire value. Separators and casing are
// ignored; unknown values are uppercased and kept.
func NormalizeOrderStatus(raw string) OrderStatus {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	trimmed = strings.NewReplacer("-", "_", " ", "_").Replace(trimmed)
	if trimmed == "" {
		return OrderStatusUnknown
	}
	if status, ok := allowedOrderStatuses[trimmed]; ok {
		return status
	}
	return OrderStatus(trimmed)
}

// Step returns the position of the status in the delivery progression, or -1 for cancelled
// and unknown statuses.
func (s OrderStatus) Step() int {
	if step, ok := orderSteps[s]; ok {
		return step
	}
	return -1
}

// IsTerminal reports whether no further transitions are expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo allows forward moves along the progression and cancellation of live orders.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return next.Step() > s.Step()
}

// Label returns the tracking text for the status.
func (s OrderStatus) Label() string {
	if label, ok := orderLabels[s]; ok {
		return label
	}
	return strings.ReplaceAll(strings.ToLower(string(s)), "_", " ")
}

// WireValue returns the lowercase form the REST API expects.
func (s OrderStatus) WireValue() string {
	return strings.ToLower(string(s))
}
