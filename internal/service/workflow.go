package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/types"
)

// RecipeSaver is the slice of the persistence gateway the workflow needs.
type RecipeSaver interface {
	Save(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
}

// SaveWorkflow drives a staged batch from "generated" to "saved": it resolves
// the batch, persists the selected recipes, and discards the batch. It is fed
// by the message channel, which has a single textual reply slot, so outcomes
// are reported as data rather than protocol-level errors.
type SaveWorkflow struct {
	batches BatchStore
	recipes RecipeSaver
	log     zerolog.Logger
}

// NewSaveWorkflow creates a new SaveWorkflow instance.
func NewSaveWorkflow(batches BatchStore, recipes RecipeSaver, log zerolog.Logger) *SaveWorkflow {
	return &SaveWorkflow{batches: batches, recipes: recipes, log: log}
}

// HandleSaveSelection processes one save-selection message and returns the
// reply text for the originating client session. A missing batch is reported
// in the reply, not raised. Out-of-range indices are skipped silently. The
// batch is removed regardless of how many recipes were persisted.
func (w *SaveWorkflow) HandleSaveSelection(ctx context.Context, msg types.SaveRecipeMessage) string {
	batch, err := w.batches.GetBatch(ctx, msg.BatchID)
	if err != nil {
		if errors.Is(err, ErrBatchNotFound) {
			return fmt.Sprintf("Error: batchId not found: %s", msg.BatchID)
		}
		w.log.Error().Err(err).Str("batch_id", msg.BatchID).Msg("batch lookup failed")
		return fmt.Sprintf("Error: could not load batch %s", msg.BatchID)
	}

	saved := 0
	for _, idx := range msg.SelectedIndices {
		if idx < 0 || idx >= len(batch) {
			continue
		}

		recipe := batch[idx]
		recipe.UserID = msg.UserID
		recipe.Image = msg.Image
		recipe.Public = false
		recipe.Rating = 0.0

		persisted, err := w.recipes.Save(ctx, &recipe)
		if err != nil {
			w.log.Error().Err(err).Str("batch_id", msg.BatchID).Int("index", idx).
				Msg("failed to save selected recipe")
			continue
		}

		w.log.Info().Str("recipe_id", persisted.ID).Str("user_id", msg.UserID).
			Msg("saved recipe from batch")
		saved++
	}

	if err := w.batches.RemoveBatch(ctx, msg.BatchID); err != nil {
		w.log.Warn().Err(err).Str("batch_id", msg.BatchID).Msg("failed to remove batch")
	}

	return fmt.Sprintf("Successfully saved %d recipe(s).", saved)
}
