package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 3.7, RoundRating(11.0/3.0))
	assert.Equal(t, 3.3, RoundRating(10.0/3.0))
	assert.Equal(t, 4.5, RoundRating(4.45))
	assert.Equal(t, 0.0, RoundRating(0.0))
}

func TestRecipe_RecomputeRating(t *testing.T) {
	recipe := Recipe{NumOfRatings: 3, TotalSumRatings: 11.0}
	recipe.RecomputeRating()
	assert.Equal(t, 3.7, recipe.Rating)

	recipe = Recipe{NumOfRatings: 0, TotalSumRatings: 0.0, Rating: 4.2}
	recipe.RecomputeRating()
	assert.Equal(t, 0.0, recipe.Rating, "no ratings means no mean")
}

func TestStringArray_Scan(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan([]byte(`["Vegan","Dessert"]`)))
	assert.Equal(t, StringArray{"Vegan", "Dessert"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)

	// sqlite hands back strings rather than byte slices
	require.NoError(t, a.Scan(`["one"]`))
	assert.Equal(t, StringArray{"one"}, a)
}

func TestRatingMap_Scan(t *testing.T) {
	var m RatingMap
	require.NoError(t, m.Scan([]byte(`{"alice":4.5}`)))
	assert.Equal(t, RatingMap{"alice": 4.5}, m)

	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)
}

func TestRecipe_JSONOmissions(t *testing.T) {
	recipe := Recipe{Title: "Toast", Servings: 1}

	data, err := json.Marshal(recipe)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.NotContains(t, fields, "estimatedPrepTime", "zero timing is omitted")
	assert.NotContains(t, fields, "estimatedCookingTime")
	assert.NotContains(t, fields, "userRating")
	assert.NotContains(t, fields, "ratingList")
	assert.Contains(t, fields, "servings")
	assert.Contains(t, fields, "rating")
}
