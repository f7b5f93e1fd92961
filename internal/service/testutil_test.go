package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forkful/forkful-backend/internal/models"
)

// newTestDB opens an isolated in-memory database migrated to the current
// schema. Each test gets its own named memory database so parallel tests do
// not share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Recipe{}))
	return db
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testContext() context.Context {
	return context.Background()
}

// createUser inserts a user and returns it.
func createUser(t *testing.T, db *gorm.DB, email string, publisher bool) *models.User {
	t.Helper()

	user := &models.User{
		Email:          email,
		Username:       email,
		PasswordHash:   "x",
		IsPublisher:    publisher,
		Preferences:    models.StringArray{},
		SavedRecipes:   models.StringArray{},
		CreatedRecipes: models.StringArray{},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createRecipe inserts a recipe owned by userID and returns it.
func createRecipe(t *testing.T, db *gorm.DB, userID string, public bool) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:        "Lemon Tart",
		Description:  "A tart with lemons",
		Categories:   models.StringArray{"Dessert"},
		Ingredients:  models.StringArray{"lemons", "butter", "sugar"},
		Instructions: models.StringArray{"Mix", "Bake"},
		Servings:     4,
		UserID:       userID,
		Public:       public,
		RatingList:   models.RatingMap{},
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
