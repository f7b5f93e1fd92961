package router

import (
	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/api"
	"github.com/forkful/forkful-backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	searchHandler *api.SearchHandler,
	userHandler *api.UserHandler,
	llmHandler *api.LLMHandler,
	wsHandler *api.WSHandler,
	validator middleware.TokenValidator,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		profile := protected.Group("/profile")
		{
			profile.GET("", authHandler.GetProfile)
			profile.PUT("", authHandler.UpdateProfile)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.POST("", recipeHandler.CreateRecipe)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.PUT("/:id", recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
			recipes.POST("/:id/rating", recipeHandler.RateRecipe)
			recipes.DELETE("/:id/rating", recipeHandler.UnrateRecipe)
			recipes.POST("/:id/image", recipeHandler.UploadImage)
		}

		search := protected.Group("/search")
		{
			search.GET("/public", searchHandler.PublicRecipes)
			search.GET("/saved", searchHandler.OwnedAndSavedRecipes)
		}

		user := protected.Group("/user")
		{
			user.POST("/saved-recipes", userHandler.AddSavedRecipes)
			user.DELETE("/saved-recipes", userHandler.DeleteSavedRecipes)
		}

		if llmHandler != nil {
			llm := protected.Group("/llm")
			{
				llm.POST("/generate", llmHandler.Generate)
			}
		}
	}

	// The save-selection channel authenticates via query token on upgrade.
	router.GET("/ws/save-recipes", wsHandler.SaveRecipes)

	return router
}
