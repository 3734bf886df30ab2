package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis backs the store with a Redis instance, dipakai di deployment.
type Redis struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedis(addr string, log *zap.Logger) *Redis {
	if log == nil {
		log = zap.NewNop()
	}
	r := redis.NewClient(&redis.Options{Addr: addr}).WithTimeout(2 * time.Second)
	return &Redis{rdb: r, log: log}
}

func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		r.log.Warn("kvstore: corrupt value, falling back to default", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		r.log.Warn("kvstore: marshal failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return r.rdb.Set(ctx, key, b, 0).Err()
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

func (r *Redis) Close() error { return r.rdb.Close() }
