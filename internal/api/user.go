package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/service"
	"github.com/forkful/forkful-backend/internal/types"
)

// UserHandler manages the caller's saved-recipes list.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// AddSavedRecipes handles POST /user/saved-recipes.
func (h *UserHandler) AddSavedRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.SavedRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.AddSavedRecipes(c.Request.Context(), userID, req.RecipeIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteSavedRecipes handles DELETE /user/saved-recipes.
func (h *UserHandler) DeleteSavedRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.SavedRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.DeleteSavedRecipes(c.Request.Context(), userID, req.RecipeIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
