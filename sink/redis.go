package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Timeouts for the storage client.
const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// DefaultTTL keeps stored documents for a day.
const DefaultTTL = 24 * time.Hour

// Setter is the subset of *redis.Client used by RedisSink.
type Setter interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisSink stores documents under Prefix+name with a TTL so a client can
// fetch and print them later.
type RedisSink struct {
	Client Setter
	Prefix string
	TTL    time.Duration
}

func (s RedisSink) Deliver(ctx context.Context, doc Document) (Outcome, error) {
	if err := checkDocument(doc); err != nil {
		return Outcome{}, err
	}
	if s.Client == nil {
		return unavailable("no storage client")
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	key := s.Prefix + doc.Name
	if err := s.Client.Set(ctx, key, doc.Bytes, ttl).Err(); err != nil {
		return unavailable("store %s: %v", key, err)
	}
	return Outcome{Status: StatusDelivered, Location: key, Size: len(doc.Bytes)}, nil
}

// NewRedisClient parses redisURL, connects and pings once.
func NewRedisClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	options.PoolSize = 10
	options.MinIdleConns = 1
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	if logger != nil {
		logger.Info("redis client connected", slog.String("addr", options.Addr))
	}
	return client, nil
}
