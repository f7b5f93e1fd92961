package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/service"
)

// SearchHandler serves the discovery endpoints: public recipes the viewer
// does not already have, and the viewer's own created+saved collection. Both
// pre-fetch through the persistence gateway and filter in memory.
type SearchHandler struct {
	recipes *service.RecipeService
	users   *service.UserService
}

// NewSearchHandler creates a new SearchHandler instance.
func NewSearchHandler(recipes *service.RecipeService, users *service.UserService) *SearchHandler {
	return &SearchHandler{recipes: recipes, users: users}
}

// PublicRecipes handles GET /search/public?category=&text=.
func (h *SearchHandler) PublicRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// The viewer's own created and saved recipes are excluded from discovery.
	excluded := make(map[string]struct{}, len(user.SavedRecipes)+len(user.CreatedRecipes))
	for _, id := range user.SavedRecipes {
		excluded[id] = struct{}{}
	}
	for _, id := range user.CreatedRecipes {
		excluded[id] = struct{}{}
	}

	allPublic, err := h.recipes.GetPublic(c.Request.Context(), 0)
	if err != nil {
		abortWithError(c, err)
		return
	}

	matching := service.FilterPublic(allPublic, excluded, c.Query("category"), c.Query("text"))
	c.JSON(http.StatusOK, matching)
}

// OwnedAndSavedRecipes handles GET /search/saved?category=&text=.
func (h *SearchHandler) OwnedAndSavedRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	created, err := h.recipes.GetByIDs(c.Request.Context(), user.CreatedRecipes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	saved, err := h.recipes.GetByIDs(c.Request.Context(), user.SavedRecipes)
	if err != nil {
		abortWithError(c, err)
		return
	}

	matching := service.FilterOwnedAndSaved(created, saved, userID, c.Query("category"), c.Query("text"))

	// Tag each entry with ownership so clients can separate the two sets.
	out := make([]gin.H, 0, len(matching))
	for _, recipe := range matching {
		out = append(out, gin.H{
			"recipe":      recipe,
			"isUserOwner": recipe.UserID == userID,
		})
	}
	c.JSON(http.StatusOK, out)
}
