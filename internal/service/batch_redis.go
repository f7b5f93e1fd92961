package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/forkful/forkful-backend/internal/models"
)

// batchKeyPrefix namespaces staged batches in Redis.
const batchKeyPrefix = "recipe:batch:"

// RedisBatchStore is a BatchStore backed by Redis, for deployments where
// staged batches should survive a single process restart or be shared across
// replicas. Entries expire after ttl so abandoned batches do not accumulate.
type RedisBatchStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBatchStore creates a Redis-backed batch store. A zero ttl defaults
// to 24 hours.
func NewRedisBatchStore(client *redis.Client, ttl time.Duration) *RedisBatchStore {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RedisBatchStore{client: client, ttl: ttl}
}

func (s *RedisBatchStore) StoreBatch(ctx context.Context, recipes []models.Recipe) (string, error) {
	batchID := uuid.New().String()

	data, err := json.Marshal(recipes)
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch: %w", err)
	}

	if err := s.client.Set(ctx, batchKeyPrefix+batchID, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save batch to Redis: %w", err)
	}

	return batchID, nil
}

func (s *RedisBatchStore) GetBatch(ctx context.Context, batchID string) ([]models.Recipe, error) {
	data, err := s.client.Get(ctx, batchKeyPrefix+batchID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get batch from Redis: %w", err)
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch: %w", err)
	}

	return recipes, nil
}

func (s *RedisBatchStore) RemoveBatch(ctx context.Context, batchID string) error {
	if err := s.client.Del(ctx, batchKeyPrefix+batchID).Err(); err != nil {
		return fmt.Errorf("failed to delete batch from Redis: %w", err)
	}
	return nil
}
