// Package cache memoizes analysis reports keyed by symbol, timeframe and params.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"SignalScope/internal/analysis"
	"SignalScope/internal/model"
)

const keyPrefix = "signalscope:analysis"

// Cache stores computed reports.
type Cache interface {
	// Get returns the cached report, or ok=false on a miss.
	Get(ctx context.Context, key string) (r *model.Report, ok bool, err error)
	Set(ctx context.Context, key string, r *model.Report) error
	Close() error
}

// Key builds the cache key for one analysis request. Params are hashed so
// that any change to periods or toggles yields a new key.
func Key(symbol, timeframe string, p analysis.Params) string {
	raw, _ := json.Marshal(p)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, strings.ToUpper(symbol), timeframe, hex.EncodeToString(sum[:8]))
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*model.Report, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, string, *model.Report) error { return nil }
func (NoopCache) Close() error { return nil }

// Config configures the Redis cache.
type Config struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache stores reports as JSON strings with a TTL.
type RedisCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache and pings the server.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

// Client returns the underlying Redis client for health checks.
func (c *RedisCache) Client() *goredis.Client { return c.client }

func (c *RedisCache) Get(ctx context.Context, key string) (*model.Report, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis GET %s: %w", key, err)
	}
	r, err := decodeReport(data)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, r *model.Report) error {
	data, err := encodeReport(r)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }

func encodeReport(r *model.Report) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return data, nil
}

func decodeReport(data []byte) (*model.Report, error) {
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	return &r, nil
}
