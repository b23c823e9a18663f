package infrastructure

import (
	"log/slog"
	"strings"
	"time"

	"deliveryClient/internal/modules/storefront/domain"
)

// Command is an instruction sent by a websocket client.
type Command struct {
	Action string `json:"action"`
	Topic  string `json:"topic,omitempty"`
}

type CommandHandler func(client *Client, cmd Command)

type CommandProcessor struct {
	hub      *Hub
	handlers map[string]CommandHandler
}

func NewCommandProcessor(hub *Hub) *CommandProcessor {
	processor := &CommandProcessor{hub: hub, handlers: make(map[string]CommandHandler)}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	key := normalizeAction(action)
	if handler == nil || key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := normalizeAction(cmd.Action)
	handler, ok := p.handlers[action]
	if !ok {
		slog.Debug("ws command ignored", slog.String("sessionId", client.sessionID), slog.String("action", action))
		return
	}
	handler(client, cmd)
}

func (p *CommandProcessor) handleSubscribe(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(client *Client, _ Command) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
