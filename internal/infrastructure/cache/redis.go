package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configure the shared client behind view-mode sessions and
// idempotency keys.
type Options struct {
	Addr     string
	Password string
	DB       int
	// zero values fall back to the defaults below
	DialTimeout time.Duration
	OpTimeout   time.Duration
	PoolSize    int
}

const (
	defaultDialTimeout = 5 * time.Second
	defaultOpTimeout   = 2 * time.Second
)

// OpenRedis connects and pings once; a client that cannot answer is closed
// and never returned.
func OpenRedis(o Options) (*redis.Client, error) {
	if o.DialTimeout <= 0 {
		o.DialTimeout = defaultDialTimeout
	}
	if o.OpTimeout <= 0 {
		o.OpTimeout = defaultOpTimeout
	}
	r := redis.NewClient(&redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DB:           o.DB,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.OpTimeout,
		WriteTimeout: o.OpTimeout,
		PoolSize:     o.PoolSize,
	})
	ctx, cancel := context.WithTimeout(context.Background(), o.DialTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis %s: %w", o.Addr, err)
	}
	return r, nil
}
