package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
)

type recordingRefresher struct {
	entities []string
	err      error
}

func (r *recordingRefresher) RefreshEntity(_ context.Context, entity string) error {
	r.entities = append(r.entities, entity)
	return r.err
}

type recordingNotifier struct {
	messages []*domain.Message
}

func (r *recordingNotifier) Broadcast(_ context.Context, msg *domain.Message) {
	r.messages = append(r.messages, msg)
}

func TestEntityStreamHandler_RefreshesThenBroadcasts(t *testing.T) {
	refresher := &recordingRefresher{}
	notifier := &recordingNotifier{}
	h := NewEntityStreamHandler("order", "delivery.orders", nil, refresher, notifier)

	require.Equal(t, "delivery.orders", h.Topic())
	err := h.Handle(context.Background(), &domain.Message{Entity: "Order", Action: "updated", ResourceID: "5"})
	require.NoError(t, err)

	assert.Equal(t, []string{"orders"}, refresher.entities)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "orders.updated", notifier.messages[0].Topic)
}

func TestEntityStreamHandler_FiltersActions(t *testing.T) {
	refresher := &recordingRefresher{}
	notifier := &recordingNotifier{}
	h := NewEntityStreamHandler("dishes", "dishes", []string{" Created ", "deleted"}, refresher, notifier)

	require.NoError(t, h.Handle(context.Background(), &domain.Message{Action: "viewed"}))
	require.NoError(t, h.Handle(context.Background(), &domain.Message{Action: "CREATED"}))

	assert.Equal(t, []string{"dishes"}, refresher.entities)
	assert.Len(t, notifier.messages, 1)
}

func TestEntityStreamHandler_RefreshFailureSkipsBroadcast(t *testing.T) {
	failure := errors.New("backend down")
	notifier := &recordingNotifier{}
	h := NewEntityStreamHandler("restaurants", "restaurants", nil, &recordingRefresher{err: failure}, notifier)

	err := h.Handle(context.Background(), &domain.Message{Action: "updated"})
	assert.ErrorIs(t, err, failure)
	assert.Empty(t, notifier.messages)
}

func TestEntityStreamHandler_UnmirroredEntityIsForwarded(t *testing.T) {
	refresher := &recordingRefresher{err: port.ErrUnsupported}
	notifier := &recordingNotifier{}
	h := NewEntityStreamHandler("", "misc", nil, refresher, notifier)

	require.NoError(t, h.Handle(context.Background(), &domain.Message{Entity: "promotions", Action: "created"}))
	assert.Empty(t, refresher.entities)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "promotions.created", notifier.messages[0].Topic)

	require.NoError(t, h.Handle(context.Background(), &domain.Message{Entity: "users", Action: "updated"}))
	assert.Equal(t, []string{"users"}, refresher.entities)
}
