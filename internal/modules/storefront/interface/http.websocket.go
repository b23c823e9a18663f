package transport

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/modules/storefront/infrastructure"
	"deliveryClient/internal/shared/normalization"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// defaultEntities are the streams a client receives when it does not pick topics itself.
var defaultEntities = []string{
	normalization.EntityRestaurants,
	normalization.EntityDishes,
	normalization.EntityReviews,
	normalization.EntityCart,
	normalization.EntityOrders,
}

// updatesWebsocket exposes /ws/updates. Clients may narrow the stream with
// ?topics=orders,cart.updated and later send subscribe/unsubscribe/ping commands.
func (h *Handler) updatesWebsocket(c echo.Context) error {
	sessionID, err := h.storefront.Identity.SessionID()
	if err != nil {
		return h.fail(c, "ws session", err)
	}
	userID := ""
	if h.claims != nil && h.storefront.Identity.Authenticated() {
		userID = h.claims.Claims().UserIdentifier()
	}
	topics := h.resolveTopics(c.QueryParam("topics"))

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("ws upgrade failed", slog.String("sessionId", sessionID), slog.String("ip", c.RealIP()), slog.Any("error", err))
		return err
	}

	client := infrastructure.NewClient(h.hub, conn, userID, sessionID, h.sendBuffer)
	// System notices such as system.unauthorized reach every connection.
	h.hub.AttachClient(client, append(topics, domain.SystemEntity))

	go client.WritePump()
	go client.ReadPump()

	connected := domain.NewMessage(domain.SystemEntity, domain.ActionConnected, "", map[string]any{
		"topics":        topics,
		"authenticated": userID != "",
	})
	connected.WithMetadata("sessionId", sessionID).WithMetadata("userId", userID)
	client.SendDomainMessage(connected)

	slog.Info("ws connected", slog.String("sessionId", sessionID), slog.String("userId", userID), slog.Any("topics", topics), slog.String("ip", c.RealIP()))
	return nil
}

// resolveTopics turns the topics query into hub subscriptions. Bare entity names are
// normalized; "<entity>.<action>" topics are kept when the action is allowed.
func (h *Handler) resolveTopics(raw string) []string {
	requested := strings.Split(raw, ",")
	topics := make([]string, 0, len(requested))
	seen := make(map[string]struct{})
	add := func(topic string) {
		if _, ok := seen[topic]; ok || topic == "" {
			return
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}

	for _, item := range requested {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		entity, action := domain.SplitTopic(item)
		entity = normalization.NormalizeEntity(entity)
		if action == "" {
			add(entity)
			continue
		}
		if h.actionAllowed(action) {
			add(domain.CustomTopic(entity, strings.ToLower(action)))
		}
	}
	if len(topics) == 0 {
		for _, entity := range defaultEntities {
			add(entity)
		}
	}
	return topics
}

// actionAllowed gates backend event actions. Actions produced by the local collections are
// always allowed.
func (h *Handler) actionAllowed(action string) bool {
	switch strings.ToLower(action) {
	case domain.ActionRefreshed, domain.ActionErrored, domain.ActionCleared, domain.ActionPong:
		return true
	}
	if len(h.allowedActions) == 0 {
		return true
	}
	for _, allowed := range h.allowedActions {
		if strings.EqualFold(strings.TrimSpace(allowed), action) {
			return true
		}
	}
	return false
}
