package port

import (
	"context"

	"deliveryClient/internal/modules/storefront/domain"
)

// Notifier pushes collection change messages to connected clients.
type Notifier interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles backend events consumed from a kafka topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) Broadcast(context.Context, *domain.Message) {}
