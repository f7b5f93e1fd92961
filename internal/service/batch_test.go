package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-backend/internal/models"
)

func batchOf(titles ...string) []models.Recipe {
	recipes := make([]models.Recipe, len(titles))
	for i, title := range titles {
		recipes[i] = models.Recipe{Title: title}
	}
	return recipes
}

func TestMemoryBatchStore_StoreAndGet(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := testContext()

	recipes := batchOf("Soup", "Salad", "Stew")

	batchID, err := store.StoreBatch(ctx, recipes)
	require.NoError(t, err)
	assert.NotEmpty(t, batchID)

	got, err := store.GetBatch(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Soup", got[0].Title)
	assert.Equal(t, "Salad", got[1].Title)
	assert.Equal(t, "Stew", got[2].Title)
}

func TestMemoryBatchStore_GetUnknownID(t *testing.T) {
	store := NewMemoryBatchStore()

	_, err := store.GetBatch(testContext(), "no-such-batch")
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestMemoryBatchStore_RemoveIsIdempotent(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := testContext()

	batchID, err := store.StoreBatch(ctx, batchOf("Soup"))
	require.NoError(t, err)

	require.NoError(t, store.RemoveBatch(ctx, batchID))
	_, err = store.GetBatch(ctx, batchID)
	assert.ErrorIs(t, err, ErrBatchNotFound)

	// Removing again, and removing an id that never existed, are no-ops.
	assert.NoError(t, store.RemoveBatch(ctx, batchID))
	assert.NoError(t, store.RemoveBatch(ctx, "no-such-batch"))
}

func TestMemoryBatchStore_UniqueIDs(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := testContext()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		batchID, err := store.StoreBatch(ctx, batchOf("Soup"))
		require.NoError(t, err)
		_, dup := seen[batchID]
		require.False(t, dup, "batch id %s issued twice", batchID)
		seen[batchID] = struct{}{}
	}
}

func TestMemoryBatchStore_CallerMutationDoesNotLeak(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := testContext()

	recipes := batchOf("Soup", "Salad")
	batchID, err := store.StoreBatch(ctx, recipes)
	require.NoError(t, err)

	// Mutating the input after storing must not affect the staged entry.
	recipes[0].Title = "Changed"

	got, err := store.GetBatch(ctx, batchID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got[0].Title)

	// Mutating a returned copy must not affect later reads.
	got[1].Title = "Also changed"
	again, err := store.GetBatch(ctx, batchID)
	require.NoError(t, err)
	assert.Equal(t, "Salad", again[1].Title)
}

func TestMemoryBatchStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := testContext()

	const workers = 32
	var wg sync.WaitGroup
	ids := make([]string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			batchID, err := store.StoreBatch(ctx, batchOf(fmt.Sprintf("Recipe %d", i)))
			assert.NoError(t, err)
			ids[i] = batchID
		}(i)
	}
	wg.Wait()

	for i, batchID := range ids {
		got, err := store.GetBatch(ctx, batchID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, fmt.Sprintf("Recipe %d", i), got[0].Title)
	}

	wg = sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.RemoveBatch(ctx, ids[i]))
		}(i)
	}
	wg.Wait()

	for _, batchID := range ids {
		_, err := store.GetBatch(ctx, batchID)
		assert.ErrorIs(t, err, ErrBatchNotFound)
	}
}
