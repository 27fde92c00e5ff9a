package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	Enabled  bool
}

type ValkeyClient struct {
	client *redis.Client
}

// NewValkeyClient connects to Valkey/Redis. Callers treat a nil client as
// "cache off": rate limiting degrades to allowing everything.
func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{client: rdb}, nil
}

// IncrWindow bumps a fixed-window counter and returns the new count. The TTL
// is set when the window opens.
func (v *ValkeyClient) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := v.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("rate counter incr failed: %w", err)
	}
	if count == 1 {
		v.client.Expire(ctx, key, window)
	}
	return count, nil
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
