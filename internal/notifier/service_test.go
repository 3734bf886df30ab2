package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/chat"
	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeMessage(t *testing.T, eventID, eventType string, payload any) kafkago.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	env := orders.Envelope{
		EventID:      eventID,
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "test",
		Payload:      raw,
	}
	value, err := json.Marshal(env)
	require.NoError(t, err)
	return kafkago.Message{Value: value}
}

func newService() (*Service, *chat.Service) {
	store := kvstore.NewMemory(nil)
	chats := chat.NewService(store)
	return &Service{Chats: chats, Store: store, ServiceName: "order-notifier"}, chats
}

func TestHandleOrderCreated(t *testing.T) {
	ctx := context.Background()
	svc, chats := newService()

	msg := envelopeMessage(t, "ev-1", orders.EventOrderCreated, orders.OrderCreatedPayload{
		OrderID:       "abc123def456",
		UserID:        "u1",
		CustomerName:  "Andhini",
		ItemCount:     2,
		Total:         51200,
		PaymentMethod: "cod",
	})
	require.NoError(t, svc.Handle(ctx, msg))

	msgs, err := chats.Conversation(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.SenderSystem, msgs[0].Sender)
	assert.Contains(t, msgs[0].Text, "#def456")
	assert.Contains(t, msgs[0].Text, "Rp 51200")
	assert.Contains(t, msgs[0].Text, "cod")
}

func TestHandleStatusChanged(t *testing.T) {
	ctx := context.Background()
	svc, chats := newService()

	msg := envelopeMessage(t, "ev-2", orders.EventStatusChanged, orders.StatusChangedPayload{
		OrderID: "abc123def456",
		UserID:  "u1",
		From:    orders.StatusDiproses,
		To:      orders.StatusDikirim,
	})
	require.NoError(t, svc.Handle(ctx, msg))

	msgs, err := chats.Conversation(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Dikirim")
}

func TestHandleDedup(t *testing.T) {
	ctx := context.Background()
	svc, chats := newService()

	msg := envelopeMessage(t, "ev-dup", orders.EventStatusChanged, orders.StatusChangedPayload{
		OrderID: "ord-1", UserID: "u1", From: orders.StatusDiproses, To: orders.StatusDikirim,
	})
	require.NoError(t, svc.Handle(ctx, msg))
	require.NoError(t, svc.Handle(ctx, msg)) // redelivery

	msgs, err := chats.Conversation(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, msgs, 1, "a redelivered event must not duplicate the notification")
}

func TestHandleIgnoresUnknownAndBadInput(t *testing.T) {
	ctx := context.Background()
	svc, chats := newService()

	t.Run("unknown event type is a no-op", func(t *testing.T) {
		msg := envelopeMessage(t, "ev-3", "InventoryReserved", map[string]string{"order_id": "x"})
		require.NoError(t, svc.Handle(ctx, msg))
		msgs, err := chats.Conversation(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("garbage value errors", func(t *testing.T) {
		err := svc.Handle(ctx, kafkago.Message{Value: []byte("bukan json")})
		assert.Error(t, err)
	})

	t.Run("missing user id is skipped", func(t *testing.T) {
		msg := envelopeMessage(t, "ev-4", orders.EventStatusChanged, orders.StatusChangedPayload{
			OrderID: "ord-2", From: orders.StatusDiproses, To: orders.StatusDikirim,
		})
		require.NoError(t, svc.Handle(ctx, msg))
	})
}
