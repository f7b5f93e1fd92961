package service

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"github.com/forkful/forkful-backend/internal/models"
)

// BatchStore stages generated-but-unsaved recipes under an opaque batch id
// until the user decides which ones to keep. Entries survive until removed or
// process restart; this is a staging cache, not a system of record.
type BatchStore interface {
	// StoreBatch inserts the sequence under a fresh batch id and returns it.
	StoreBatch(ctx context.Context, recipes []models.Recipe) (string, error)

	// GetBatch returns the stored sequence unmodified, or ErrBatchNotFound.
	// Positional indices are stable for the lifetime of the entry.
	GetBatch(ctx context.Context, batchID string) ([]models.Recipe, error)

	// RemoveBatch deletes the entry. Removing an unknown id is a no-op.
	RemoveBatch(ctx context.Context, batchID string) error
}

const batchShardCount = 16

type batchShard struct {
	mu      sync.RWMutex
	batches map[string][]models.Recipe
}

// MemoryBatchStore is the canonical in-process BatchStore: a sharded
// concurrent map, so operations on distinct keys never contend on a single
// lock. Safe for concurrent use by any number of in-flight requests.
type MemoryBatchStore struct {
	shards [batchShardCount]*batchShard
}

// NewMemoryBatchStore creates an empty in-process batch store.
func NewMemoryBatchStore() *MemoryBatchStore {
	s := &MemoryBatchStore{}
	for i := range s.shards {
		s.shards[i] = &batchShard{batches: make(map[string][]models.Recipe)}
	}
	return s
}

func (s *MemoryBatchStore) shard(batchID string) *batchShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(batchID))
	return s.shards[h.Sum32()%batchShardCount]
}

// StoreBatch inserts a copy of the sequence under a fresh UUID and returns
// the id. Never touches external I/O.
func (s *MemoryBatchStore) StoreBatch(ctx context.Context, recipes []models.Recipe) (string, error) {
	batchID := uuid.New().String()

	stored := make([]models.Recipe, len(recipes))
	copy(stored, recipes)

	shard := s.shard(batchID)
	shard.mu.Lock()
	shard.batches[batchID] = stored
	shard.mu.Unlock()

	return batchID, nil
}

// GetBatch returns a copy of the stored sequence so callers can mutate their
// view without corrupting the staged entry.
func (s *MemoryBatchStore) GetBatch(ctx context.Context, batchID string) ([]models.Recipe, error) {
	shard := s.shard(batchID)
	shard.mu.RLock()
	stored, ok := shard.batches[batchID]
	shard.mu.RUnlock()

	if !ok {
		return nil, ErrBatchNotFound
	}

	out := make([]models.Recipe, len(stored))
	copy(out, stored)
	return out, nil
}

// RemoveBatch deletes the entry; unknown ids are a no-op.
func (s *MemoryBatchStore) RemoveBatch(ctx context.Context, batchID string) error {
	shard := s.shard(batchID)
	shard.mu.Lock()
	delete(shard.batches, batchID)
	shard.mu.Unlock()
	return nil
}
