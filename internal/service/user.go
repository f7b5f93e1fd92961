package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/types"
)

// UserService manages user profiles and the saved-recipes list. Saved-list
// changes are all-or-nothing: every id is validated before any mutation, so a
// rejected request leaves the list untouched.
type UserService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(db *gorm.DB, log zerolog.Logger) *UserService {
	return &UserService{db: db, log: log}
}

// GetByID retrieves a user, or ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, or ErrUserNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields of req to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req types.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hashed)
	}
	if req.ProfilePic != nil {
		updates["profile_pic"] = *req.ProfilePic
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Preferences != nil {
		updates["preferences"] = models.StringArray(*req.Preferences)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, userID)
}

// AddSavedRecipes appends recipe ids to the user's saved list. Every id must
// reference an existing recipe the user did not create; ids already in the
// list are accepted and skipped. If any id is invalid the whole request is
// rejected and nothing changes.
func (s *UserService) AddSavedRecipes(ctx context.Context, userID string, recipeIDs []string) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var invalid []string
	toAdd := make([]string, 0, len(recipeIDs))
	for _, recipeID := range recipeIDs {
		if containsID(user.SavedRecipes, recipeID) {
			continue
		}

		var recipe models.Recipe
		if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				invalid = append(invalid, recipeID+": recipe does not exist")
				continue
			}
			return nil, err
		}

		if recipe.UserID == userID {
			invalid = append(invalid, recipeID+": cannot save your own recipe")
			continue
		}

		toAdd = append(toAdd, recipeID)
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSavedRecipes, strings.Join(invalid, "; "))
	}

	if len(toAdd) == 0 {
		return user, nil
	}

	updated := append(user.SavedRecipes, toAdd...)
	if err := s.db.WithContext(ctx).Model(user).Update("saved_recipes", updated).Error; err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID)
}

// DeleteSavedRecipes removes recipe ids from the user's saved list. Every id
// must currently be in the list, otherwise the whole request is rejected.
func (s *UserService) DeleteSavedRecipes(ctx context.Context, userID string, recipeIDs []string) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, recipeID := range recipeIDs {
		if !containsID(user.SavedRecipes, recipeID) {
			missing = append(missing, recipeID)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: not in saved list: %s", ErrInvalidSavedRecipes, strings.Join(missing, ", "))
	}

	updated := user.SavedRecipes
	for _, recipeID := range recipeIDs {
		updated = removeID(updated, recipeID)
	}

	if err := s.db.WithContext(ctx).Model(user).Update("saved_recipes", updated).Error; err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID)
}
