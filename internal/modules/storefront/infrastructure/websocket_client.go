package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"deliveryClient/internal/modules/storefront/domain"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 1 << 16
)

// Conn is the subset of *websocket.Conn the client pumps use.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	ReadJSON(v any) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

type Client struct {
	hub        *Hub
	conn       Conn
	send       chan []byte
	connID     string
	userID     string
	sessionID  string
	commands   *CommandProcessor
	subscribed map[string]struct{}

	closeOnce sync.Once
	closed    chan struct{}
	sendMu    sync.RWMutex
}

// NewClient builds a websocket client for the given session and optional user.
func NewClient(hub *Hub, conn Conn, userID, sessionID string, buf int) *Client {
	if buf <= 0 {
		buf = 32
	}
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		connID:     uuid.NewString(),
		userID:     strings.TrimSpace(userID),
		sessionID:  strings.TrimSpace(sessionID),
		subscribed: make(map[string]struct{}),
		closed:     make(chan struct{}),
	}
	client.commands = NewCommandProcessor(hub)
	return client
}

// accepts reports whether a message scoped to userID and sessionID may reach c. Empty scopes
// match every client.
func (c *Client) accepts(userID, sessionID string) bool {
	return (userID == "" || c.userID == userID) && (sessionID == "" || c.sessionID == sessionID)
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		close(c.closed)
		close(c.send)
		c.sendMu.Unlock()
		_ = c.conn.Close()
	})
}

// enqueue queues data for the write pump. It reports false when the buffer is full or the
// client is closed.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		slog.Warn("websocket send buffer full", slog.String("sessionId", c.sessionID), slog.String("connId", c.connID))
		return false
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		go c.hub.detachClient(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("sessionId", c.sessionID), slog.Any("error", err))
			}
			return
		}
		c.commands.Process(c, cmd)
	}
}
