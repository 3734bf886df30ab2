// Package cart is the cart aggregate: the selected-but-unpurchased lines for
// one user, persisted to the KV store after every mutation.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/AndhiniDev/dapur-azka-backend/internal/catalog"
	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
)

var ErrLineNotFound = errors.New("cart line not found")

// Line is one (product, quantity) pairing. Product fields are copied at
// add-time so later catalog edits don't rewrite what's in the cart.
type Line struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

type Service struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

// Get loads the user's cart; absent or unreadable state is an empty cart.
func (s *Service) Get(ctx context.Context, userID string) ([]Line, error) {
	var lines []Line
	if _, err := s.store.Get(ctx, kvstore.CartKey(userID), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Add merges the product into the cart: an existing line for the same
// product id gets its quantity incremented, otherwise a new line is
// appended. qty <= 0 is a no-op.
func (s *Service) Add(ctx context.Context, userID string, p catalog.Product, qty int) ([]Line, error) {
	if qty <= 0 {
		return s.Get(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Image:     p.Image,
			Quantity:  qty,
		})
	}
	if err := s.store.Set(ctx, kvstore.CartKey(userID), lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SetQuantity clamps qty to a minimum of 0, updates the line, then prunes
// lines whose quantity hit 0.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, qty int) ([]Line, error) {
	if qty < 0 {
		qty = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID == productID {
			found = true
			l.Quantity = qty
		}
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	if !found {
		return nil, ErrLineNotFound
	}
	if err := s.store.Set(ctx, kvstore.CartKey(userID), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Remove(ctx context.Context, userID, productID string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	if err := s.store.Set(ctx, kvstore.CartKey(userID), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(ctx, kvstore.CartKey(userID))
}

// Subtotal is Σ(price × quantity) over the lines.
func Subtotal(lines []Line) int {
	sum := 0
	for _, l := range lines {
		sum += l.Price * l.Quantity
	}
	return sum
}

// ItemCount is Σ quantity over the lines.
func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
