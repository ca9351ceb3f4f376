// Package redis provides the Redis-backed idempotency and rate-limit store
// for minegate.
package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bardlex/minegate/pkg/errors"
)

// DefaultKeyPrefix namespaces every key the gateway writes
const DefaultKeyPrefix = "minegate:"

// Client wraps Redis operations for the gateway
type Client struct {
	rdb    *redis.Client
	prefix string
}

// Config holds Redis connection configuration. Settings carried by the URL
// query (pool_size, dial_timeout, ...) win over the fields below.
type Config struct {
	URL       string
	KeyPrefix string

	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PingTimeout bounds the connectivity check made by NewClient
	PingTimeout time.Duration
}

// ConfigFromURL validates a redis:// or rediss:// URL and returns a Config
// with pool defaults for a single gateway instance
func ConfigFromURL(url string) (*Config, error) {
	if _, err := redis.ParseURL(url); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "redis_url", "invalid Redis URL")
	}

	return &Config{
		URL:          url,
		KeyPrefix:    DefaultKeyPrefix,
		PoolSize:     10,
		MinIdleConns: 1,
		MaxRetries:   2,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PingTimeout:  5 * time.Second,
	}, nil
}

// Options resolves the go-redis options for cfg
func (cfg *Config) Options() (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "redis_url", "invalid Redis URL")
	}

	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// NewClient connects and pings the server
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	pingCtx := ctx
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "redis_ping", "Redis is unreachable").
			WithContext("addr", opts.Addr)
	}

	return &Client{rdb: rdb, prefix: cfg.KeyPrefix}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Health pings the server
func (c *Client) Health(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		stats := c.rdb.PoolStats()
		return errors.Wrap(err, errors.ErrorTypeStorage, "redis_health", "Redis is unreachable").
			WithContext("total_conns", stats.TotalConns).
			WithContext("timeouts", stats.Timeouts)
	}
	return nil
}

// Idempotency

// IdempotentStart is what a start request stored under an Idempotency-Key
type IdempotentStart struct {
	SessionID string    `json:"session_id"`
	StoredAt  time.Time `json:"stored_at"`
}

func (c *Client) idempotencyKey(key string) string {
	return c.prefix + "idem:" + key
}

// LookupStart returns the start recorded under key, or nil when none is
func (c *Client) LookupStart(ctx context.Context, key string) (*IdempotentStart, error) {
	data, err := c.rdb.Get(ctx, c.idempotencyKey(key)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	var rec IdempotentStart
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}
	return &rec, nil
}

// StoreStart records sessionID under key unless the key is already taken.
// It reports whether the record was written.
func (c *Client) StoreStart(ctx context.Context, key, sessionID string, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(IdempotentStart{SessionID: sessionID, StoredAt: time.Now().UTC()})
	if err != nil {
		return false, fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	ok, err := c.rdb.SetNX(ctx, c.idempotencyKey(key), data, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set idempotency key: %w", err)
	}
	return ok, nil
}

// Rate limiting

// CheckRateLimit counts one hit for subject in the current fixed window and
// reports whether it is within limit
func (c *Client) CheckRateLimit(ctx context.Context, subject string, limit int64, window time.Duration) (bool, error) {
	key := rateLimitKey(c.prefix, subject, window, time.Now())

	pipe := c.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= limit, nil
}

// rateLimitKey buckets subject into fixed windows
func rateLimitKey(prefix, subject string, window time.Duration, now time.Time) string {
	bucket := now.Unix()
	if secs := int64(window / time.Second); secs > 0 {
		bucket /= secs
	}
	return fmt.Sprintf("%srl:%s:%d", prefix, subject, bucket)
}
