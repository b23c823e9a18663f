package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
)

type clientSet map[*Client]struct{}

// Hub fans collection change messages out to websocket clients subscribed by exact topic
// ("orders.updated") or by entity ("orders"). Messages carrying a sessionId or userId in their
// metadata only reach matching clients.
type Hub struct {
	mu     sync.RWMutex
	routes map[string]clientSet
	conns  clientSet
}

func NewHub() *Hub {
	return &Hub{
		routes: make(map[string]clientSet),
		conns:  make(clientSet),
	}
}

// AttachClient registers c and subscribes it to topics.
func (h *Hub) AttachClient(c *Client, topics []string) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	for _, topic := range topics {
		if topic = strings.TrimSpace(topic); topic != "" {
			h.addRouteLocked(c, topic)
		}
	}
	total := len(h.conns)
	h.mu.Unlock()
	slog.Info("ws client attached", slog.String("sessionId", c.sessionID), slog.String("connId", c.connID), slog.Any("topics", topics), slog.Int("clients", total))
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast implements port.Notifier.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.String("topic", msg.Topic), slog.Any("error", err))
		return
	}
	for _, c := range h.recipients(msg) {
		if !c.enqueue(data) {
			go h.detachClient(c)
		}
	}
}

// recipients collects the clients routed to msg by topic or entity, each once, and drops those
// outside the session or user the message is scoped to.
func (h *Hub) recipients(msg *domain.Message) []*Client {
	user := strings.TrimSpace(msg.Metadata["userId"])
	session := strings.TrimSpace(msg.Metadata["sessionId"])

	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*Client
	for c := range h.routes[msg.Topic] {
		if c.accepts(user, session) {
			out = append(out, c)
		}
	}
	for c := range h.routes[msg.Entity] {
		if _, dup := h.routes[msg.Topic][c]; !dup && c.accepts(user, session) {
			out = append(out, c)
		}
	}
	return out
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addRouteLocked(c, topic)
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeRouteLocked(c, topic)
	slog.Debug("ws client unsubscribed", slog.String("sessionId", c.sessionID), slog.String("topic", topic))
}

func (h *Hub) detachClient(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	for topic := range c.subscribed {
		h.removeRouteLocked(c, topic)
	}
	_, known := h.conns[c]
	delete(h.conns, c)
	h.mu.Unlock()

	c.close()
	if known {
		slog.Info("ws client detached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("connId", c.connID))
	}
}

func (h *Hub) addRouteLocked(c *Client, topic string) {
	if h.routes[topic] == nil {
		h.routes[topic] = make(clientSet)
	}
	h.routes[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) removeRouteLocked(c *Client, topic string) {
	if set, ok := h.routes[topic]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.routes, topic)
		}
	}
	delete(c.subscribed, topic)
}

var _ port.Notifier = (*Hub)(nil)
