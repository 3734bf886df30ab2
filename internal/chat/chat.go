// Package chat is the dashboard support conversation: one message log per
// user, appended by customers, admins, and the order notifier.
package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/google/uuid"
)

const (
	SenderCustomer = "customer"
	SenderAdmin    = "admin"
	SenderSystem   = "system"
)

var ErrEmptyMessage = errors.New("message text is required")

type Message struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

type Service struct {
	mu    sync.Mutex
	store kvstore.Store
	now   func() time.Time
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Append adds a message to the user's conversation.
func (s *Service) Append(ctx context.Context, userID, sender, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	m := Message{
		ID:     uuid.NewString(),
		UserID: userID,
		Sender: sender,
		Text:   text,
		SentAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return Message{}, err
	}
	all = append(all, m)
	if err := s.store.Set(ctx, kvstore.KeyChats, all); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Conversation returns one user's messages, oldest first.
func (s *Service) Conversation(ctx context.Context, userID string) ([]Message, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0, len(all))
	for _, m := range all {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (s *Service) load(ctx context.Context) ([]Message, error) {
	var all []Message
	if _, err := s.store.Get(ctx, kvstore.KeyChats, &all); err != nil {
		return nil, err
	}
	return all, nil
}
