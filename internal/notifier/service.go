// Package notifier turns order lifecycle events into chat messages on the
// customer's dashboard conversation.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AndhiniDev/dapur-azka-backend/internal/chat"
	kafkax "github.com/AndhiniDev/dapur-azka-backend/internal/kafka"
	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Service struct {
	Chats       *chat.Service
	Store       kvstore.Store
	ServiceName string
	Log         *zap.Logger
}

// Handle is wired as the consumer handler for both order topics.
func (s *Service) Handle(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// Dedup via event_id, sama seperti consumer lain.
	dkey := kvstore.DedupKey(s.ServiceName, env.EventID)
	var seen bool
	if found, _ := s.Store.Get(ctx, dkey, &seen); found && seen {
		return nil
	}
	if err := s.Store.Set(ctx, dkey, true); err != nil {
		return err
	}

	switch env.EventType {
	case orders.EventOrderCreated:
		p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.notify(ctx, p.UserID, fmt.Sprintf(
			"Pesanan #%s diterima. Total Rp %d, pembayaran %s. Pesanan Anda sedang diproses.",
			shortID(p.OrderID), p.Total, p.PaymentMethod))
	case orders.EventStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.StatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.notify(ctx, p.UserID, fmt.Sprintf(
			"Pesanan #%s statusnya menjadi %s.", shortID(p.OrderID), p.To))
	default:
		return nil // ignore
	}
}

func (s *Service) notify(ctx context.Context, userID, text string) error {
	if userID == "" {
		return nil
	}
	_, err := s.Chats.Append(ctx, userID, chat.SenderSystem, text)
	if err == nil && s.Log != nil {
		s.Log.Info("notifier: chat message sent", zap.String("user_id", userID))
	}
	return err
}

func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
