// Package checkout turns a cart into an order: precondition checks, totals,
// the snapshot write, and the cart clear.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/cart"
	"github.com/AndhiniDev/dapur-azka-backend/internal/catalog"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DeliveryRegular = "regular"
	DeliveryExpress = "express"
)

// Ongkos kirim per metode.
var DeliveryFees = map[string]int{
	DeliveryRegular: 5000,
	DeliveryExpress: 15000,
}

// TaxPercent is the fixed tax rate applied to the subtotal.
const TaxPercent = 10

var (
	ErrEmptyCart             = errors.New("keranjang kosong")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrProfileIncomplete     = errors.New("alamat pengiriman tidak lengkap")
	ErrUnknownDeliveryMethod = errors.New("unknown delivery method")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
)

var paymentMethods = map[string]bool{
	"bank-transfer-bca":     true,
	"bank-transfer-mandiri": true,
	"cod":                   true,
}

type Authenticator interface {
	IsAuthenticated(ctx context.Context, userID string) bool
}

type Service struct {
	carts    *cart.Service
	catalog  *catalog.Service
	registry *orders.Registry
	auth     Authenticator
	events   orders.Publisher
	service  string
	log      *zap.Logger
	now      func() time.Time
}

func NewService(carts *cart.Service, cat *catalog.Service, reg *orders.Registry, auth Authenticator, events orders.Publisher, service string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		carts:    carts,
		catalog:  cat,
		registry: reg,
		auth:     auth,
		events:   events,
		service:  service,
		log:      log,
		now:      time.Now,
	}
}

// Totals computes subtotal, tax (10%), shipping and total for a cart and
// delivery method.
func Totals(lines []cart.Line, deliveryMethod string) (subtotal, tax, shipping, total int, err error) {
	fee, ok := DeliveryFees[deliveryMethod]
	if !ok {
		return 0, 0, 0, 0, ErrUnknownDeliveryMethod
	}
	subtotal = cart.Subtotal(lines)
	tax = subtotal * TaxPercent / 100
	total = subtotal + tax + fee
	return subtotal, tax, fee, total, nil
}

// Submit builds the order. It refuses up front when the cart is empty, the
// actor isn't logged in, or the delivery profile is missing name/phone/
// address; refusal leaves the cart and the registry untouched. On success the
// order lands in the registry with status Diproses, the cart is cleared, and
// an OrderCreated event goes out.
//
// Prices are re-read from the catalog here, not taken from the cart lines:
// jangan percaya harga dari client.
func (s *Service) Submit(ctx context.Context, userID string, delivery orders.DeliveryDetails, deliveryMethod, paymentMethod, notes string) (orders.Order, error) {
	if !s.auth.IsAuthenticated(ctx, userID) {
		return orders.Order{}, ErrNotAuthenticated
	}
	lines, err := s.carts.Get(ctx, userID)
	if err != nil {
		return orders.Order{}, err
	}
	if len(lines) == 0 {
		return orders.Order{}, ErrEmptyCart
	}
	if strings.TrimSpace(delivery.Name) == "" ||
		strings.TrimSpace(delivery.Phone) == "" ||
		strings.TrimSpace(delivery.Address) == "" {
		return orders.Order{}, ErrProfileIncomplete
	}
	if !paymentMethods[paymentMethod] {
		return orders.Order{}, ErrUnknownPaymentMethod
	}

	// Refresh line prices from the catalog. A product that vanished from the
	// menu keeps its add-time price: historical carts still check out.
	for i := range lines {
		if p, err := s.catalog.Get(ctx, lines[i].ProductID); err == nil {
			lines[i].Price = p.Price
			lines[i].Name = p.Name
		}
	}

	subtotal, tax, shipping, total, err := Totals(lines, deliveryMethod)
	if err != nil {
		return orders.Order{}, err
	}

	o := orders.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           lines,
		DeliveryDetails: delivery,
		DeliveryMethod:  deliveryMethod,
		PaymentMethod:   paymentMethod,
		Notes:           notes,
		Subtotal:        subtotal,
		Tax:             tax,
		ShippingCost:    shipping,
		Total:           total,
		Status:          orders.StatusDiproses,
		OrderDate:       s.now().UTC(),
	}

	if err := s.registry.Append(ctx, o); err != nil {
		return orders.Order{}, err
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		// Order is already written; log and move on rather than fail the
		// checkout the customer just completed.
		s.log.Warn("checkout: cart clear after order write", zap.String("order_id", o.ID), zap.Error(err))
	}
	s.publishCreated(o)
	return o, nil
}

func (s *Service) publishCreated(o orders.Order) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(orders.OrderCreatedPayload{
		OrderID:       o.ID,
		UserID:        o.UserID,
		CustomerName:  o.DeliveryDetails.Name,
		ItemCount:     cart.ItemCount(o.Items),
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
	})
	if err != nil {
		s.log.Warn("checkout: marshal event payload", zap.Error(err))
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.service,
		CorrelationID: o.ID,
		Payload:       payload,
	}
	value, err := json.Marshal(ev)
	if err != nil {
		s.log.Warn("checkout: marshal envelope", zap.Error(err))
		return
	}
	s.events.Publish(orders.PartitionKey(o.ID), value,
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
