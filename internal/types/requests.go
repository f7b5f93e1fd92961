package types

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Username    string   `json:"username" binding:"required"`
	Password    string   `json:"password" binding:"required,min=8"`
	IsPublisher bool     `json:"isPublisher"`
	ProfilePic  string   `json:"profile_pic"`
	Bio         string   `json:"bio"`
	Preferences []string `json:"preferences"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile changes. Nil means "leave as
// is" so partial updates never clobber unmentioned fields.
type UpdateProfileRequest struct {
	Username    *string   `json:"username"`
	Password    *string   `json:"password"`
	ProfilePic  *string   `json:"profile_pic"`
	Bio         *string   `json:"bio"`
	Preferences *[]string `json:"preferences"`
}

// RecipeUpdateRequest carries optional content changes for a recipe. Nil
// fields are left untouched. IsPublic is publisher-gated: for non-publishers
// the field is silently dropped rather than rejecting the whole request.
type RecipeUpdateRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Categories   *[]string `json:"categories"`
	Ingredients  *[]string `json:"ingredients"`
	Instructions *[]string `json:"instructions"`
	PrepTime     *int      `json:"estimatedPrepTime"`
	CookTime     *int      `json:"estimatedCookingTime"`
	Servings     *int      `json:"servings"`
	Image        *string   `json:"image"`
	IsPublic     *bool     `json:"isPublic"`
}

// RateRecipeRequest is the payload for adding or changing a rating.
type RateRecipeRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

// SavedRecipesRequest names recipe ids to add to or delete from the caller's
// saved list.
type SavedRecipesRequest struct {
	RecipeIDs []string `json:"recipeIds" binding:"required"`
}

// GenerateRecipesRequest asks the LLM for candidate recipes.
type GenerateRecipesRequest struct {
	Query           string `json:"query" binding:"required"`
	NumberOfRecipes int    `json:"numberOfRecipes"`
}

// SaveRecipeMessage is the save-selection message delivered over the
// WebSocket channel. SelectedIndices are positions in the staged batch;
// out-of-range indices are skipped, not errored.
type SaveRecipeMessage struct {
	BatchID         string `json:"batchId"`
	SelectedIndices []int  `json:"selectedIndices"`
	UserID          string `json:"userId"`
	Image           string `json:"image"`
}
