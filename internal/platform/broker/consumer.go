package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/shared/normalization"
)

// MessageHandler receives every decoded message together with the kafka topic it came from.
type MessageHandler func(ctx context.Context, kafkaTopic string, msg *domain.Message) error

type KafkaConsumer struct {
	reader *kafka.Reader
	topic  string
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		topic: topic,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume reads until ctx is cancelled. Read and handler errors are logged and skipped.
func (c *KafkaConsumer) Consume(ctx context.Context, handler MessageHandler) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				slog.Info("kafka consumer stopped", slog.String("topic", c.topic))
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.String("topic", c.topic), slog.Any("error", err))
			time.Sleep(time.Second)
			continue
		}
		msg := decodeMessage(m)
		slog.Info("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(ctx, m.Topic, msg); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", m.Topic), slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID json.RawMessage   `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       json.RawMessage   `json:"data"`
}

// decodeMessage accepts the backend's JSON event envelope. Payloads that are not JSON still
// produce a message whose entity and action are inferred from the kafka topic name.
func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{Timestamp: m.Time.UTC()}
	if m.Time.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		entity, action := inferEntityActionFromTopic(m.Topic)
		msg.Entity = entity
		msg.Action = action
		msg.Topic = domain.CustomTopic(entity, action)
		msg.Data = string(m.Value)
		return msg
	}

	topicEntity, topicAction := inferEntityActionFromTopic(m.Topic)
	eventEntity, eventAction := domain.SplitTopic(event.Topic)
	msg.Entity = normalization.NormalizeEntity(firstNonEmpty(event.Entity, eventEntity, topicEntity))
	msg.Action = strings.ToLower(firstNonEmpty(event.Action, eventAction, topicAction))
	msg.ResourceID = rawID(event.ResourceID)
	msg.Metadata = event.Metadata
	if len(event.Data) > 0 && string(event.Data) != "null" {
		msg.Data = event.Data
	}
	msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	return msg
}

// inferEntityActionFromTopic reads "<prefix>.<entity>.<action>" style topic names. A topic with
// a single segment names the entity only.
func inferEntityActionFromTopic(topic string) (string, string) {
	parts := strings.Split(strings.TrimSpace(topic), ".")
	if len(parts) >= 2 {
		entity := strings.TrimSpace(parts[len(parts)-2])
		action := strings.TrimSpace(parts[len(parts)-1])
		if entity != "" && action != "" {
			return normalization.NormalizeEntity(entity), strings.ToLower(action)
		}
	}
	if entity := normalizeTopic(topic); entity != "" {
		return normalization.NormalizeEntity(entity), "unknown"
	}
	return "", "unknown"
}

// rawID accepts both numeric and string identifiers.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return normalization.AsString(value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func normalizeTopic(topic string) string {
	if idx := strings.LastIndex(topic, "."); idx >= 0 {
		topic = topic[idx+1:]
	}
	return strings.TrimSpace(topic)
}
