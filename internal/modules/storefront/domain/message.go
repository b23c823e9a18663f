package domain

import "time"

// Message is the change notification that flows from kafka and local mutations to websocket clients.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewMessage builds a message for entity/action stamped with the current UTC time.
func NewMessage(entity, action, resourceID string, data any) *Message {
	return &Message{
		Topic:      CustomTopic(entity, action),
		Entity:     entity,
		Action:     action,
		ResourceID: resourceID,
		Data:       data,
		Timestamp:  time.Now().UTC(),
	}
}

// WithMetadata sets a routing hint such as sessionId or userId and returns the message.
func (m *Message) WithMetadata(key, value string) *Message {
	if value == "" {
		return m
	}
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	m.Metadata[key] = value
	return m
}
