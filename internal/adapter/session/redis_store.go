package session

import (
	"context"
	"errors"
	"time"

	"opsplatform-backend/internal/domain/viewmode"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "finance_view_mode:"

var _ viewmode.Store = (*RedisStore)(nil)

// RedisStore keeps the finance view mode of each user until ttl passes
// without a write.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(userID string) string { return keyPrefix + userID }

func (s *RedisStore) Get(ctx context.Context, userID string) (viewmode.Mode, error) {
	v, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	m := viewmode.Mode(v)
	if !m.Valid() {
		// unreadable values count as unset
		return "", nil
	}
	return m, nil
}

func (s *RedisStore) Set(ctx context.Context, userID string, m viewmode.Mode) error {
	return s.rdb.Set(ctx, key(userID), string(m), s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, key(userID)).Err()
}
