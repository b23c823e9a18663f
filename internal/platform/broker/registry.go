package broker

import (
	"context"
	"log/slog"
	"sync"

	"deliveryClient/internal/modules/storefront/domain"
)

// Dispatcher routes a consumed message by its kafka topic.
type Dispatcher interface {
	Dispatch(ctx context.Context, kafkaTopic string, msg *domain.Message) error
}

// StartKafkaConsumers starts one consumer goroutine per topic. The returned WaitGroup is done
// once every consumer has observed ctx cancellation.
func StartKafkaConsumers(ctx context.Context, dispatcher Dispatcher, brokers []string, groupID string, topics []string) *sync.WaitGroup {
	var wg sync.WaitGroup
	if len(brokers) == 0 || len(topics) == 0 {
		slog.Info("kafka consumers disabled", slog.Int("brokers", len(brokers)), slog.Int("topics", len(topics)))
		return &wg
	}
	for _, topic := range topics {
		wg.Add(1)
		go func(tp string) {
			defer wg.Done()
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			_ = consumer.Consume(ctx, dispatcher.Dispatch)
		}(topic)
	}
	slog.Info("kafka consumers started", slog.Any("topics", topics), slog.String("group", groupID))
	return &wg
}
