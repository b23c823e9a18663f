package infrastructure

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reviewdomain "deliveryClient/internal/modules/reviews/domain"
	"deliveryClient/internal/modules/storefront/domain"
)

type nopConn struct{}

func (nopConn) WriteMessage(int, []byte) error            { return nil }
func (nopConn) WriteControl(int, []byte, time.Time) error { return nil }
func (nopConn) ReadJSON(any) error                        { return nil }
func (nopConn) SetReadLimit(int64)                        {}
func (nopConn) SetReadDeadline(time.Time) error           { return nil }
func (nopConn) SetPongHandler(func(string) error)         {}
func (nopConn) Close() error                              { return nil }

func reviewFixture() reviewdomain.Review {
	return reviewdomain.Review{RestaurantID: "1", Rating: 4}
}

func drain(c *Client) []domain.Message {
	var out []domain.Message
	for {
		select {
		case data := <-c.send:
			var msg domain.Message
			_ = json.Unmarshal(data, &msg)
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHub_BroadcastRouting(t *testing.T) {
	hub := NewHub()
	everything := NewClient(hub, nopConn{}, "", "s1", 8)
	ordersOnly := NewClient(hub, nopConn{}, "", "s1", 8)
	otherSession := NewClient(hub, nopConn{}, "", "s2", 8)
	hub.AttachClient(everything, []string{"orders", "orders.updated", "cart"})
	hub.AttachClient(ordersOnly, []string{"orders"})
	hub.AttachClient(otherSession, []string{"orders", "cart"})

	ctx := context.Background()
	hub.Broadcast(ctx, domain.NewMessage("orders", domain.ActionUpdated, "5", nil))
	hub.Broadcast(ctx, domain.NewMessage("cart", domain.ActionUpdated, "", nil).WithMetadata("sessionId", "s1"))

	assert.Len(t, drain(everything), 2, "topic and entity routes must not duplicate a message")
	ordersMsgs := drain(ordersOnly)
	require.Len(t, ordersMsgs, 1)
	assert.Equal(t, "orders.updated", ordersMsgs[0].Topic)
	otherMsgs := drain(otherSession)
	require.Len(t, otherMsgs, 1, "session-scoped cart message must not leak")
	assert.Equal(t, "orders.updated", otherMsgs[0].Topic)
	assert.Equal(t, 3, hub.ClientCount())
}

func TestHub_FullBufferDetachesClient(t *testing.T) {
	hub := NewHub()
	slow := NewClient(hub, nopConn{}, "", "s1", 1)
	hub.AttachClient(slow, []string{"orders"})

	hub.Broadcast(context.Background(), domain.NewMessage("orders", domain.ActionUpdated, "1", nil))
	hub.Broadcast(context.Background(), domain.NewMessage("orders", domain.ActionUpdated, "2", nil))

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.False(t, slow.enqueue([]byte("late")))
}

func TestHub_UserScopedMessage(t *testing.T) {
	hub := NewHub()
	owner := NewClient(hub, nopConn{}, "7", "s1", 8)
	stranger := NewClient(hub, nopConn{}, "8", "s2", 8)
	hub.AttachClient(owner, []string{"orders"})
	hub.AttachClient(stranger, []string{"orders"})

	hub.Broadcast(context.Background(), domain.NewMessage("orders", domain.ActionCreated, "3", nil).WithMetadata("userId", "7"))

	assert.Len(t, drain(owner), 1)
	assert.Empty(t, drain(stranger))
}

func TestCommandProcessor(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nopConn{}, "", "s1", 8)
	hub.AttachClient(client, nil)

	client.commands.Process(client, Command{Action: " Subscribe ", Topic: "dishes.deleted"})
	hub.Broadcast(context.Background(), domain.NewMessage("dishes", domain.ActionDeleted, "", nil))
	require.Len(t, drain(client), 1)

	client.commands.Process(client, Command{Action: "unsubscribe", Topic: "dishes.deleted"})
	hub.Broadcast(context.Background(), domain.NewMessage("dishes", domain.ActionDeleted, "", nil))
	assert.Empty(t, drain(client))

	client.commands.Process(client, Command{Action: "ping"})
	msgs := drain(client)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.TopicSystemPong, msgs[0].Topic)
}
