package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_AddRating(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, testLogger())
	ctx := testContext()

	creator := createUser(t, db, "creator@example.com", true)
	alice := createUser(t, db, "alice@example.com", false)
	bob := createUser(t, db, "bob@example.com", false)
	carol := createUser(t, db, "carol@example.com", false)
	recipe := createRecipe(t, db, creator.ID, true)

	t.Run("aggregate tracks distinct raters", func(t *testing.T) {
		updated, err := svc.AddRating(ctx, recipe.ID, 4.0, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.NumOfRatings)
		assert.Equal(t, 4.0, updated.TotalSumRatings)
		assert.Equal(t, 4.0, updated.Rating)

		updated, err = svc.AddRating(ctx, recipe.ID, 5.0, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.NumOfRatings)
		assert.Equal(t, 9.0, updated.TotalSumRatings)
		assert.Equal(t, 4.5, updated.Rating)

		updated, err = svc.AddRating(ctx, recipe.ID, 2.0, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.NumOfRatings)
		assert.Equal(t, 11.0, updated.TotalSumRatings)
		// 11/3 = 3.666..., rounded to one decimal.
		assert.Equal(t, 3.7, updated.Rating)
		assert.Len(t, updated.RatingList, 3)
	})

	t.Run("re-rating changes sum but not count", func(t *testing.T) {
		updated, err := svc.AddRating(ctx, recipe.ID, 1.0, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.NumOfRatings)
		assert.Equal(t, 10.0, updated.TotalSumRatings)
		assert.Equal(t, 3.3, updated.Rating)
		assert.Equal(t, 1.0, updated.RatingList[carol.ID])
	})

	t.Run("ratings persist across reads", func(t *testing.T) {
		reloaded, err := svc.getRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, reloaded.NumOfRatings)
		assert.Equal(t, 10.0, reloaded.TotalSumRatings)
		assert.Len(t, reloaded.RatingList, 3)
	})
}

func TestRatingService_AddRatingPreconditions(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, testLogger())
	ctx := testContext()

	creator := createUser(t, db, "creator@example.com", true)
	rater := createUser(t, db, "rater@example.com", false)
	public := createRecipe(t, db, creator.ID, true)
	private := createRecipe(t, db, creator.ID, false)

	t.Run("rating below range", func(t *testing.T) {
		_, err := svc.AddRating(ctx, public.ID, 0.0, rater.ID)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("rating above range", func(t *testing.T) {
		_, err := svc.AddRating(ctx, public.ID, 5.1, rater.ID)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		_, err := svc.AddRating(ctx, public.ID, 1.0, rater.ID)
		assert.NoError(t, err)
		_, err = svc.AddRating(ctx, public.ID, 5.0, rater.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		_, err := svc.AddRating(ctx, "no-such-recipe", 3.0, rater.ID)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("private recipe", func(t *testing.T) {
		_, err := svc.AddRating(ctx, private.ID, 3.0, rater.ID)
		assert.ErrorIs(t, err, ErrPrivateRecipe)
	})

	t.Run("self-rating", func(t *testing.T) {
		_, err := svc.AddRating(ctx, public.ID, 3.0, creator.ID)
		assert.ErrorIs(t, err, ErrSelfRating)
	})
}

func TestRatingService_RemoveRating(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db, testLogger())
	ctx := testContext()

	creator := createUser(t, db, "creator@example.com", true)
	alice := createUser(t, db, "alice@example.com", false)
	bob := createUser(t, db, "bob@example.com", false)
	recipe := createRecipe(t, db, creator.ID, true)
	private := createRecipe(t, db, creator.ID, false)

	_, err := svc.AddRating(ctx, recipe.ID, 4.0, alice.ID)
	require.NoError(t, err)
	_, err = svc.AddRating(ctx, recipe.ID, 2.0, bob.ID)
	require.NoError(t, err)

	t.Run("restores pre-add aggregate", func(t *testing.T) {
		updated, err := svc.RemoveRating(ctx, recipe.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.NumOfRatings)
		assert.Equal(t, 4.0, updated.TotalSumRatings)
		assert.Equal(t, 4.0, updated.Rating)
		_, stillThere := updated.RatingList[bob.ID]
		assert.False(t, stillThere)
	})

	t.Run("removing last rating zeroes the mean", func(t *testing.T) {
		updated, err := svc.RemoveRating(ctx, recipe.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.NumOfRatings)
		assert.Equal(t, 0.0, updated.TotalSumRatings)
		assert.Equal(t, 0.0, updated.Rating)
		assert.Empty(t, updated.RatingList)
	})

	t.Run("removing a rating never given", func(t *testing.T) {
		_, err := svc.RemoveRating(ctx, recipe.ID, bob.ID)
		assert.ErrorIs(t, err, ErrNotRated)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		_, err := svc.RemoveRating(ctx, "no-such-recipe", alice.ID)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("private recipe", func(t *testing.T) {
		_, err := svc.RemoveRating(ctx, private.ID, alice.ID)
		assert.ErrorIs(t, err, ErrPrivateRecipe)
	})
}
