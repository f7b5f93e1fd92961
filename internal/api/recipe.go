package api

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/service"
	"github.com/forkful/forkful-backend/internal/types"
)

// maxImageBytes caps recipe image uploads at 5 MiB.
const maxImageBytes = 5 << 20

// RecipeHandler handles recipe CRUD, ratings, and image upload.
type RecipeHandler struct {
	recipes *service.RecipeService
	ratings *service.RatingService
	users   *service.UserService
	images  *service.ImageService
}

// NewRecipeHandler creates a new RecipeHandler instance. images may be nil
// when S3 is not configured; the upload endpoint then reports unavailable.
func NewRecipeHandler(recipes *service.RecipeService, ratings *service.RatingService, users *service.UserService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, ratings: ratings, users: users, images: images}
}

// CreateRecipe handles POST /recipes: a user-authored (non-generated) recipe.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Title        string   `json:"title" binding:"required"`
		Description  string   `json:"description"`
		Categories   []string `json:"categories"`
		Ingredients  []string `json:"ingredients"`
		Instructions []string `json:"instructions"`
		PrepTime     int      `json:"estimatedPrepTime"`
		CookTime     int      `json:"estimatedCookingTime"`
		Servings     int      `json:"servings"`
		Image        string   `json:"image"`
		IsPublic     bool     `json:"isPublic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe := &models.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Categories:   req.Categories,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Image:        req.Image,
		UserID:       userID,
		// Visibility is publisher-gated, same as on update.
		Public: req.IsPublic && user.IsPublisher,
	}

	saved, err := h.recipes.Save(c.Request.Context(), recipe)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListRecipes handles GET /recipes: the caller's own created recipes.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipes, err := h.recipes.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles GET /recipes/:id. Owners see the full rating detail;
// other viewers only see public recipes, with the detail stripped and their
// own rating surfaced as userRating.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipe, err := h.recipes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if recipe.UserID != userID {
		if !recipe.Public {
			c.JSON(http.StatusForbidden, gin.H{"error": "recipe is private"})
			return
		}
		if value, rated := recipe.RatingList[userID]; rated {
			userRating := value
			recipe.UserRating = &userRating
		}
		recipe.RatingList = nil
		recipe.NumOfRatings = 0
		recipe.TotalSumRatings = 0.0
	}

	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe handles PUT /recipes/:id.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), c.Param("id"), &req, user)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /recipes/:id. Only the creator may delete.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipe, err := h.recipes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if recipe.UserID != userID {
		abortWithError(c, service.ErrNotOwner)
		return
	}

	deleted, err := h.recipes.Delete(c.Request.Context(), recipe.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// RateRecipe handles POST /recipes/:id/rating.
func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.ratings.AddRating(c.Request.Context(), c.Param("id"), req.Rating, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// UnrateRecipe handles DELETE /recipes/:id/rating.
func (h *RecipeHandler) UnrateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipe, err := h.ratings.RemoveRating(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// UploadImage handles POST /recipes/:id/image: stores the image in S3 and
// sets it as the recipe's image reference (a content update).
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), data, contentType, filepath.Ext(fileHeader.Filename))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), c.Param("id"), &types.RecipeUpdateRequest{Image: &url}, user)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}
