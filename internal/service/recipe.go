package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/types"
)

// RecipeService is the persistence gateway for recipes. Besides plain CRUD it
// maintains the denormalized back-references on users (creator's createdRecipes,
// savers' savedRecipes). The recipe document is always written first; the
// back-reference writes are best-effort and never fail the primary operation.
type RecipeService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, log zerolog.Logger) *RecipeService {
	return &RecipeService{db: db, log: log}
}

// Save persists a recipe. A recipe without an id is treated as new: its
// rating aggregate is initialized to zero/empty and an id is assigned on
// write. If the recipe has a creator, the creator's createdRecipes list gains
// the new id; a failure there is logged and swallowed so the recipe write
// still succeeds.
func (s *RecipeService) Save(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.ID == "" {
		recipe.NumOfRatings = 0
		recipe.TotalSumRatings = 0.0
		recipe.Rating = 0.0
		recipe.RatingList = models.RatingMap{}
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}

	if recipe.UserID != "" {
		s.appendCreatedRecipe(ctx, recipe.UserID, recipe.ID)
	}

	return recipe, nil
}

// appendCreatedRecipe adds the recipe id to the creator's createdRecipes list
// if absent. Best-effort: failures are logged, never propagated.
func (s *RecipeService) appendCreatedRecipe(ctx context.Context, userID, recipeID string) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("recipe_id", recipeID).
			Msg("could not load creator to update createdRecipes")
		return
	}

	if containsID(user.CreatedRecipes, recipeID) {
		return
	}

	updated := append(user.CreatedRecipes, recipeID)
	if err := s.db.WithContext(ctx).Model(&user).Update("created_recipes", updated).Error; err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("recipe_id", recipeID).
			Msg("failed to update creator's createdRecipes")
	}
}

// GetByID retrieves a recipe, or ErrRecipeNotFound.
func (s *RecipeService) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetByUserID lists all recipes created by userID. An empty result is valid,
// not an error.
func (s *RecipeService) GetByUserID(ctx context.Context, userID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetPublic lists public recipes, capped at limit when limit > 0.
func (s *RecipeService) GetPublic(ctx context.Context, limit int) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Where("public = ?", true)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetByIDs fetches the recipes for the given ids, skipping ids that no longer
// resolve. Order follows ids, not the store.
func (s *RecipeService) GetByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, err := s.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrRecipeNotFound) {
				continue
			}
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// Update applies a partial content update on behalf of actor. Only the
// creator may update; the public flag only sticks for publishers and is
// silently dropped otherwise. The creator id is immutable through this path.
// Any successful content update resets the whole rating aggregate: edited
// recipes lose their prior ratings.
func (s *RecipeService) Update(ctx context.Context, id string, req *types.RecipeUpdateRequest, actor *models.User) (*models.Recipe, error) {
	recipe, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if recipe.UserID != actor.ID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Categories != nil {
		updates["categories"] = models.StringArray(*req.Categories)
	}
	if req.Ingredients != nil {
		updates["ingredients"] = models.StringArray(*req.Ingredients)
	}
	if req.Instructions != nil {
		updates["instructions"] = models.StringArray(*req.Instructions)
	}
	if req.PrepTime != nil {
		updates["prep_time"] = *req.PrepTime
	}
	if req.CookTime != nil {
		updates["cook_time"] = *req.CookTime
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.IsPublic != nil {
		if actor.IsPublisher {
			updates["public"] = *req.IsPublic
		} else {
			s.log.Info().Str("user_id", actor.ID).Str("recipe_id", id).
				Msg("non-publisher attempted to change public status, ignoring field")
		}
	}

	if len(updates) > 0 {
		// Edits invalidate all prior ratings.
		updates["rating"] = 0.0
		updates["num_of_ratings"] = 0
		updates["total_sum_ratings"] = 0.0
		updates["rating_list"] = models.RatingMap{}

		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes a recipe and cleans up every back-reference to it: the
// creator's createdRecipes and the savedRecipes of every user who saved it.
// Returns false without error when the id does not resolve. Each cleanup step
// is best-effort; a failing user update is logged and the rest proceed.
func (s *RecipeService) Delete(ctx context.Context, id string) (bool, error) {
	recipe, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return false, nil
		}
		return false, err
	}

	if recipe.UserID != "" {
		s.removeCreatedRecipe(ctx, recipe.UserID, id)
	}

	s.removeFromSavedLists(ctx, id)

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *RecipeService) removeCreatedRecipe(ctx context.Context, userID, recipeID string) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("recipe_id", recipeID).
			Msg("could not load creator to clean up createdRecipes")
		return
	}

	if !containsID(user.CreatedRecipes, recipeID) {
		return
	}

	updated := removeID(user.CreatedRecipes, recipeID)
	if err := s.db.WithContext(ctx).Model(&user).Update("created_recipes", updated).Error; err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("recipe_id", recipeID).
			Msg("failed to clean up creator's createdRecipes")
	}
}

func (s *RecipeService) removeFromSavedLists(ctx context.Context, recipeID string) {
	savers, err := s.usersWithSavedRecipe(ctx, recipeID)
	if err != nil {
		s.log.Warn().Err(err).Str("recipe_id", recipeID).
			Msg("failed to find users with recipe in savedRecipes")
		return
	}

	for i := range savers {
		user := &savers[i]
		if !containsID(user.SavedRecipes, recipeID) {
			continue
		}
		updated := removeID(user.SavedRecipes, recipeID)
		if err := s.db.WithContext(ctx).Model(user).Update("saved_recipes", updated).Error; err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Str("recipe_id", recipeID).
				Msg("failed to clean up user's savedRecipes")
		}
	}
}

// usersWithSavedRecipe queries users whose savedRecipes list contains the id.
// JSONB containment on Postgres, a LIKE fallback elsewhere.
func (s *RecipeService) usersWithSavedRecipe(ctx context.Context, recipeID string) ([]models.User, error) {
	var users []models.User
	query := s.db.WithContext(ctx)
	if s.db.Dialector.Name() == "postgres" {
		query = query.Where("saved_recipes @> ?", fmt.Sprintf(`["%s"]`, recipeID))
	} else {
		query = query.Where("saved_recipes LIKE ?", "%\""+recipeID+"\"%")
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func containsID(ids models.StringArray, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids models.StringArray, id string) models.StringArray {
	out := make(models.StringArray, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
