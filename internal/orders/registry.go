// Package orders keeps the order registry: immutable checkout snapshots with
// one mutable status field, persisted as a single list in the KV store.
package orders

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrUnknownStatus = errors.New("unknown order status")
)

// Publisher is what the registry needs from the event bus. Satisfied by
// *kafka.Producer; nil means events are skipped (tests).
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Registry struct {
	mu      sync.Mutex
	store   kvstore.Store
	events  Publisher
	service string
	log     *zap.Logger
}

func NewRegistry(store kvstore.Store, events Publisher, service string, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{store: store, events: events, service: service, log: log}
}

// Append adds a new order snapshot and refreshes the user's latest-order key.
func (r *Registry) Append(ctx context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	all = append(all, o)
	if err := r.store.Set(ctx, kvstore.KeyOrders, all); err != nil {
		return err
	}
	return r.store.Set(ctx, kvstore.LatestOrderKey(o.UserID), o)
}

// ListAll returns every order, newest first.
func (r *Registry) ListAll(ctx context.Context) ([]Order, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderDate.After(all[j].OrderDate) })
	return all, nil
}

func (r *Registry) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *Registry) Get(ctx context.Context, orderID string) (Order, error) {
	all, err := r.load(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range all {
		if o.ID == orderID {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// Latest returns the user's most recent order snapshot (ringkasan pesanan).
func (r *Registry) Latest(ctx context.Context, userID string) (Order, error) {
	var o Order
	found, err := r.store.Get(ctx, kvstore.LatestOrderKey(userID), &o)
	if err != nil {
		return Order{}, err
	}
	if !found {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// UpdateStatus moves an order through the status FSM and publishes a
// StatusChanged event. Moves outside the transition table are rejected.
func (r *Registry) UpdateStatus(ctx context.Context, orderID string, next Status) (Order, error) {
	if !next.Valid() {
		return Order{}, ErrUnknownStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return Order{}, err
	}
	for i := range all {
		if all[i].ID != orderID {
			continue
		}
		from := all[i].Status
		if !CanTransition(from, next) {
			return Order{}, &ErrInvalidTransition{From: from, To: next}
		}
		all[i].Status = next
		if err := r.store.Set(ctx, kvstore.KeyOrders, all); err != nil {
			return Order{}, err
		}
		r.publishStatusChanged(all[i], from, next)
		return all[i], nil
	}
	return Order{}, ErrNotFound
}

func (r *Registry) publishStatusChanged(o Order, from, to Status) {
	if r.events == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      r.service,
		CorrelationID: o.ID,
	}
	payload, err := marshalPayload(StatusChangedPayload{OrderID: o.ID, UserID: o.UserID, From: from, To: to})
	if err != nil {
		r.log.Warn("orders: marshal status event", zap.Error(err))
		return
	}
	ev.Payload = payload
	value, err := marshalPayload(ev)
	if err != nil {
		r.log.Warn("orders: marshal envelope", zap.Error(err))
		return
	}
	r.events.Publish(PartitionKey(o.ID), value,
		kafkago.Header{Key: "x-event-type", Value: []byte(EventStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (r *Registry) load(ctx context.Context) ([]Order, error) {
	var all []Order
	if _, err := r.store.Get(ctx, kvstore.KeyOrders, &all); err != nil {
		return nil, err
	}
	return all, nil
}
