package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/villagesim/npc-engine/pkg/npc"
)

const characterKeyPrefix = "character:"

// RedisStore persists characters in Redis as JSON values under prefixed
// keys. Suited to live simulation state that other processes read.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store. A zero ttl stores
// characters without expiration.
func NewRedisStore(addr string, ttl time.Duration, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb, logger: logger, ttl: ttl}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// WaitForConnection waits for Redis to become available during startup.
func (r *RedisStore) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStore) SaveCharacter(ctx context.Context, c *npc.Character) error {
	if c == nil {
		return fmt.Errorf("character cannot be nil")
	}

	data, err := json.Marshal(c)
	if err != nil {
		r.logger.Error("Failed to marshal character", "id", c.ID, "error", err)
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	key := characterKeyPrefix + c.ID
	if err := r.client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save character", "id", c.ID, "error", err)
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (r *RedisStore) LoadCharacter(ctx context.Context, id string) (*npc.Character, error) {
	key := characterKeyPrefix + id
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to load character", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load character: %w", err)
	}

	var c npc.Character
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		r.logger.Error("Failed to unmarshal character", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &c, nil
}

func (r *RedisStore) ListCharacters(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, characterKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), characterKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return ids, nil
}

func (r *RedisStore) DeleteCharacter(ctx context.Context, id string) error {
	key := characterKeyPrefix + id
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete character", "id", id, "error", err)
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}
