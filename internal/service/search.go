package service

import (
	"strings"

	"github.com/forkful/forkful-backend/internal/models"
)

// The filter engine is pure and in-memory: it takes pre-fetched collections
// and applies category/text predicates, with no store coupling. Handlers
// fetch the candidate sets through the persistence gateway first.

// MatchesCategory reports whether the recipe matches the category filter.
// An empty filter or "all" (case-insensitive) matches everything; otherwise
// any of the recipe's category tags must contain the filter as a
// case-insensitive substring.
func MatchesCategory(recipe *models.Recipe, category string) bool {
	if category == "" || strings.EqualFold(category, "all") {
		return true
	}

	needle := strings.ToLower(category)
	for _, tag := range recipe.Categories {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// MatchesText reports whether the recipe matches the free-text filter. An
// empty filter matches everything; otherwise the title, any ingredient, or
// any instruction must contain the filter as a case-insensitive substring.
func MatchesText(recipe *models.Recipe, text string) bool {
	if text == "" {
		return true
	}

	needle := strings.ToLower(text)
	if strings.Contains(strings.ToLower(recipe.Title), needle) {
		return true
	}
	for _, ingredient := range recipe.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), needle) {
			return true
		}
	}
	for _, instruction := range recipe.Instructions {
		if strings.Contains(strings.ToLower(instruction), needle) {
			return true
		}
	}
	return false
}

// FilterPublic selects the public recipes that match both predicates and are
// not in excludedIDs (the viewer's own created and saved recipes). Recipes
// the viewer does not own expose only the rounded mean rating: the rating
// detail fields are stripped from the result.
func FilterPublic(allPublic []models.Recipe, excludedIDs map[string]struct{}, category, text string) []models.Recipe {
	matching := make([]models.Recipe, 0, len(allPublic))
	for _, recipe := range allPublic {
		if _, excluded := excludedIDs[recipe.ID]; excluded {
			continue
		}
		if !MatchesCategory(&recipe, category) || !MatchesText(&recipe, text) {
			continue
		}
		stripRatingDetail(&recipe)
		matching = append(matching, recipe)
	}
	return matching
}

// FilterOwnedAndSaved selects, from the viewer's created and saved recipes,
// those matching both predicates. Created recipes keep full rating detail.
// Saved (non-owned) recipes have the detail stripped but gain the viewer's
// own rating as a computed userRating field when present.
func FilterOwnedAndSaved(created, saved []models.Recipe, viewerID, category, text string) []models.Recipe {
	matching := make([]models.Recipe, 0, len(created)+len(saved))

	for _, recipe := range created {
		if MatchesCategory(&recipe, category) && MatchesText(&recipe, text) {
			matching = append(matching, recipe)
		}
	}

	for _, recipe := range saved {
		if !MatchesCategory(&recipe, category) || !MatchesText(&recipe, text) {
			continue
		}
		if value, rated := recipe.RatingList[viewerID]; rated {
			userRating := value
			recipe.UserRating = &userRating
		}
		stripRatingDetail(&recipe)
		matching = append(matching, recipe)
	}

	return matching
}

// stripRatingDetail removes the per-rater breakdown, leaving only the rounded
// mean visible to viewers who do not own the recipe.
func stripRatingDetail(recipe *models.Recipe) {
	recipe.RatingList = nil
	recipe.NumOfRatings = 0
	recipe.TotalSumRatings = 0.0
}
