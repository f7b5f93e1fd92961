package service

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/forkful/forkful-backend/internal/models"
)

// RatingService applies exactly one rating per (recipe, user) pair and keeps
// the aggregate fields consistent. Updates are read-modify-write without an
// optimistic lock: concurrent raters on the same recipe are last-write-wins
// on the aggregate, an accepted approximation rather than a crash risk.
type RatingService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewRatingService creates a new RatingService instance.
func NewRatingService(db *gorm.DB, log zerolog.Logger) *RatingService {
	return &RatingService{db: db, log: log}
}

// AddRating records raterID's rating for a recipe, either as a first-time
// rating or as a change to an existing one.
//
// Preconditions, checked in order before any write:
//   - rating must be in [1.0, 5.0] (ErrInvalidRating)
//   - the recipe must exist (ErrRecipeNotFound)
//   - the recipe must be public (ErrPrivateRecipe)
//   - the rater must not be the creator (ErrSelfRating)
func (s *RatingService) AddRating(ctx context.Context, recipeID string, rating float64, raterID string) (*models.Recipe, error) {
	if rating < 1.0 || rating > 5.0 {
		return nil, ErrInvalidRating
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if !recipe.Public {
		return nil, ErrPrivateRecipe
	}
	if recipe.UserID != "" && recipe.UserID == raterID {
		return nil, ErrSelfRating
	}

	if recipe.RatingList == nil {
		recipe.RatingList = models.RatingMap{}
	}

	if old, rated := recipe.RatingList[raterID]; rated {
		// Re-rating: swap the old contribution for the new one.
		recipe.TotalSumRatings = recipe.TotalSumRatings - old + rating
	} else {
		recipe.TotalSumRatings += rating
		recipe.NumOfRatings++
	}
	recipe.RatingList[raterID] = rating
	recipe.RecomputeRating()

	if err := s.persistAggregate(ctx, recipe); err != nil {
		return nil, err
	}

	s.log.Debug().Str("recipe_id", recipeID).Str("rater_id", raterID).
		Float64("rating", rating).Msg("rating recorded")
	return recipe, nil
}

// RemoveRating withdraws raterID's rating from a recipe.
//
// Preconditions, checked in order before any write:
//   - the recipe must exist (ErrRecipeNotFound)
//   - the recipe must be public (ErrPrivateRecipe)
//   - raterID must have an existing rating (ErrNotRated)
func (s *RatingService) RemoveRating(ctx context.Context, recipeID, raterID string) (*models.Recipe, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if !recipe.Public {
		return nil, ErrPrivateRecipe
	}

	old, rated := recipe.RatingList[raterID]
	if !rated {
		return nil, ErrNotRated
	}

	recipe.TotalSumRatings -= old
	recipe.NumOfRatings--
	delete(recipe.RatingList, raterID)
	recipe.RecomputeRating()

	if err := s.persistAggregate(ctx, recipe); err != nil {
		return nil, err
	}

	s.log.Debug().Str("recipe_id", recipeID).Str("rater_id", raterID).
		Msg("rating removed")
	return recipe, nil
}

func (s *RatingService) getRecipe(ctx context.Context, recipeID string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// persistAggregate writes all four aggregate fields as a single update. Each
// field write is a full overwrite of the last-read state.
func (s *RatingService) persistAggregate(ctx context.Context, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"total_sum_ratings": recipe.TotalSumRatings,
			"num_of_ratings":    recipe.NumOfRatings,
			"rating":            recipe.Rating,
			"rating_list":       recipe.RatingList,
		}).Error
}
