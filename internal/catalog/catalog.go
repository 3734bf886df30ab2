// Package catalog holds the menu. Products are immutable catalog entries:
// only the back-office edits them, the cart never does.
package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // rupiah
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// Service serves the menu. Menu bawaan dipakai sampai admin pernah
// mengedit; setelah itu daftar di KV yang berlaku.
type Service struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	var ps []Product
	found, err := s.store.Get(ctx, kvstore.KeyProducts, &ps)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaultMenu(), nil
	}
	return ps, nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	ps, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range ps {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// ListByCategory returns the menu filtered by category; empty or "semua"
// returns everything.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	ps, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" || strings.EqualFold(category, "semua") {
		return ps, nil
	}
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	if p.ID == "" {
		p.ID = slug(p.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, existing := range ps {
		if existing.ID == p.ID {
			// Nama sama -> jangan tabrakan id, pakai uuid suffix.
			p.ID = p.ID + "-" + uuid.NewString()[:8]
			break
		}
	}
	ps = append(ps, p)
	if err := s.store.Set(ctx, kvstore.KeyProducts, ps); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for i := range ps {
		if ps[i].ID == p.ID {
			ps[i] = p
			if err := s.store.Set(ctx, kvstore.KeyProducts, ps); err != nil {
				return Product{}, err
			}
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, err := s.List(ctx)
	if err != nil {
		return err
	}
	out := ps[:0]
	removed := false
	for _, p := range ps {
		if p.ID == id {
			removed = true
			continue
		}
		out = append(out, p)
	}
	if !removed {
		return ErrNotFound
	}
	return s.store.Set(ctx, kvstore.KeyProducts, out)
}

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.Price < 0 {
		return errors.New("product price must be non-negative")
	}
	return nil
}

func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-':
			return '-'
		default:
			return -1
		}
	}, s)
	return strings.Trim(strings.ReplaceAll(s, "--", "-"), "-")
}
