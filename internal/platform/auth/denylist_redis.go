package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisDenylistPrefix = "denylist:refresh:"

// RedisDenylist stores revoked jtis in Redis, keyed with a TTL equal to the
// token's remaining lifetime. Survives restarts and is shared across
// replicas, unlike MemoryDenylist.
type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(redisURL string) (*RedisDenylist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisDenylist{client: client}, nil
}

func (s *RedisDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to track.
		return nil
	}
	return s.client.Set(ctx, redisDenylistPrefix+jti, "1", ttl).Err()
}

func (s *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, redisDenylistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisDenylist) Close() error {
	return s.client.Close()
}
