package infrastructure

import (
	"context"
	"log/slog"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
)

// HandlerRegistry routes consumed kafka messages to the handler registered for their topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

// Topics lists the kafka topics with a registered handler.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, kafkaTopic string, msg *domain.Message) error {
	handler, ok := r.handlers[kafkaTopic]
	if !ok {
		slog.Debug("no handler for topic", slog.String("topic", kafkaTopic))
		return nil
	}
	return handler.Handle(ctx, msg)
}
