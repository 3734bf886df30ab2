package kvstore

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Memory keeps everything in-process. Dipakai di test dan dev lokal.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	log  *zap.Logger
}

func NewMemory(log *zap.Logger) *Memory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Memory{data: map[string][]byte{}, log: log}
}

func (m *Memory) Get(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	b, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		m.log.Warn("kvstore: corrupt value, falling back to default", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		m.log.Warn("kvstore: marshal failed", zap.String("key", key), zap.Error(err))
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}
