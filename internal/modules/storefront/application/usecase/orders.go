package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	orderdomain "deliveryClient/internal/modules/orders/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/shared/normalization"
)

// Orders mirrors the caller's orders.
type Orders struct {
	*EntityCollection[orderdomain.Order]
	gateway port.OrderGateway
}

func NewOrders(gateway port.OrderGateway, notifier port.Notifier) *Orders {
	return &Orders{
		EntityCollection: newEntityCollection[orderdomain.Order](normalization.EntityOrders, gateway, notifier),
		gateway:          gateway,
	}
}

// Active returns orders that are still in progress.
func (o *Orders) Active() []orderdomain.Order {
	return o.Filter(func(item orderdomain.Order) bool { return !item.Status.IsTerminal() })
}

// UpdateStatus moves an order along its delivery progression. Transitions are checked against
// the local copy when one exists; the backend has the final say.
func (o *Orders) UpdateStatus(ctx context.Context, id string, status orderdomain.OrderStatus) (orderdomain.Order, error) {
	id = strings.TrimSpace(id)
	current, known := o.Find(id)
	if known && !current.Status.CanTransitionTo(status) {
		return orderdomain.Order{}, fmt.Errorf("order %s %s -> %s: %w", id, current.Status, status, port.ErrInvalidTransition)
	}
	updated, err := o.gateway.UpdateStatus(ctx, id, status)
	if err != nil {
		slog.Warn("order status update failed", slog.String("orderId", id), slog.String("status", string(status)), slog.Any("error", err))
		return orderdomain.Order{}, fmt.Errorf("update order %s status: %w", id, err)
	}
	if strings.TrimSpace(updated.ID) == "" {
		// Acknowledgement-only reply: apply the requested status to what we hold.
		if known {
			updated = current
		} else {
			updated = orderdomain.Order{ID: id}
		}
		updated.Status = status
	}
	o.upsert(updated)
	o.publish(ctx, domain.ActionUpdated, updated.ID, updated, map[string]string{"status": updated.Status.WireValue()})
	return updated, nil
}
