// Package cache keeps the serialized order list in Redis so dashboard polls
// do not hit Postgres on every tick.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/phoo-bakery/api/internal/events"
	"github.com/redis/go-redis/v9"
)

const (
	orderListKey  = "bakery:orders:list"
	generationKey = "bakery:orders:generation"
)

// NoGeneration is returned by Get when the generation could not be read.
// Set ignores it.
const NoGeneration int64 = -1

var errStaleGeneration = errors.New("order list invalidated since read")

// Connect parses a redis:// URL, opens a client and pings it.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// OrderListCache stores the GET /orders response body. Redis errors are
// logged and treated as a miss.
type OrderListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewOrderListCache creates a cache whose entries expire after ttl.
func NewOrderListCache(rdb *redis.Client, ttl time.Duration) *OrderListCache {
	return &OrderListCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached body, if any, and the current list generation.
// On a miss the caller passes the generation back to Set after reading the
// database.
func (c *OrderListCache) Get(ctx context.Context) ([]byte, int64, bool) {
	pipe := c.rdb.Pipeline()
	genCmd := pipe.Get(ctx, generationKey)
	bodyCmd := pipe.Get(ctx, orderListKey)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("WARNING: read order list cache: %v", err)
		return nil, NoGeneration, false
	}

	gen, err := genCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("WARNING: read order list generation: %v", err)
		return nil, NoGeneration, false
	}
	body, err := bodyCmd.Bytes()
	if err != nil {
		return nil, gen, false
	}
	return body, gen, true
}

// Set stores body for the configured TTL unless the list was invalidated
// after gen was read.
func (c *OrderListCache) Set(ctx context.Context, gen int64, body []byte) {
	if gen == NoGeneration {
		return
	}
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, orderListKey, body, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
	default:
		log.Printf("WARNING: write order list cache: %v", err)
	}
}

// Invalidate bumps the generation and drops the cached body.
func (c *OrderListCache) Invalidate(ctx context.Context) {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, orderListKey)
		return nil
	})
	if err != nil {
		log.Printf("WARNING: invalidate order list cache: %v", err)
	}
}

// Notify invalidates on every order event.
func (c *OrderListCache) Notify(ctx context.Context, _ events.Event) {
	c.Invalidate(ctx)
}
