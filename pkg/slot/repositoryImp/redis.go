package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/slot/repository"
)

type redisSlot struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedis(rdb redis.UniversalClient, prefix string) repository.SlotRepository {
	return &redisSlot{rdb: rdb, prefix: prefix}
}

func (r *redisSlot) Driver() string { return "redis" }

func (r *redisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("slot %q: %w", key, apperr.ErrSlotEmpty)
	}
	return b, err
}

// Put writes without expiry; the slot lives as long as the redis keyspace.
func (r *redisSlot) Put(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *redisSlot) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }
