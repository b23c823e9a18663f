package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/shared/normalization"
)

// Refresher reloads a mirrored collection by entity name.
type Refresher interface {
	RefreshEntity(ctx context.Context, entity string) error
}

// EntityStreamHandler reacts to backend change events from one kafka topic: it refreshes the
// affected collection and forwards the event to websocket clients. Actions outside the
// allowed set are ignored; an empty set allows everything.
type EntityStreamHandler struct {
	entity         string
	kafkaTopic     string
	allowedActions map[string]struct{}
	refresher      Refresher
	notifier       port.Notifier
}

func NewEntityStreamHandler(entity, kafkaTopic string, allowedActions []string, refresher Refresher, notifier port.Notifier) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	if notifier == nil {
		notifier = port.NopNotifier{}
	}
	return &EntityStreamHandler{
		entity:         normalization.NormalizeEntity(entity),
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		refresher:      refresher,
		notifier:       notifier,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.kafkaTopic }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}

	entityName := h.entity
	if entityName == "" {
		entityName = normalization.NormalizeEntity(msg.Entity)
	}
	msg.Entity = entityName
	if msg.Topic == "" || !strings.HasPrefix(msg.Topic, entityName+".") {
		msg.Topic = domain.CustomTopic(entityName, msg.Action)
	}

	if err := h.refresh(ctx, entityName, msg); err != nil {
		return err
	}
	h.notifier.Broadcast(ctx, msg)
	return nil
}

// refresh reloads the collection before the event is forwarded so clients that react to it
// read fresh data. Entities without a local mirror are forwarded only.
func (h *EntityStreamHandler) refresh(ctx context.Context, entityName string, msg *domain.Message) error {
	if h.refresher == nil || !normalization.IsValidEntity(entityName) {
		return nil
	}
	slog.Info("entity-stream refresh", slog.String("entity", entityName), slog.String("action", msg.Action), slog.String("resourceId", msg.ResourceID))
	err := h.refresher.RefreshEntity(ctx, entityName)
	if errors.Is(err, port.ErrUnsupported) {
		return nil
	}
	return err
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
