package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cart snapshots as serialized JSON under a prefixed key
// with a TTL, so abandoned session carts expire on their own.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionKey string) ([]models.CartEntry, error) {
	data, err := s.client.Get(ctx, s.key(sessionKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get cart %s from redis: %w", sessionKey, err)
	}

	var entries []models.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("discarding unreadable cart snapshot",
			slog.String("session", sessionKey),
			slog.String("error", err.Error()))

		return nil, nil
	}

	return entries, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionKey string, entries []models.CartEntry) error {
	if entries == nil {
		entries = []models.CartEntry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal cart entries: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionKey), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s in redis: %w", sessionKey, err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionKey string) error {
	if err := s.client.Del(ctx, s.key(sessionKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s from redis: %w", sessionKey, err)
	}

	return nil
}

func (s *RedisStore) key(sessionKey string) string {
	return s.keyPrefix + sessionKey
}
