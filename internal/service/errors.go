// Package service implements the business logic: recipe persistence with
// denormalized back-references, rating aggregation, batch staging of
// generated recipes, in-memory search, and the generation-to-save workflow.
//
// This file centralizes the service-level error values so they can be
// consistently returned by service methods and checked by callers. Handlers
// translate them to HTTP statuses; the services themselves never write
// transport-level responses.
package service

import "errors"

// Validation errors (bad or out-of-range input).
var (
	// ErrInvalidRating is returned when a rating falls outside [1.0, 5.0].
	ErrInvalidRating = errors.New("rating must be between 1.0 and 5.0")

	// ErrNotRated is returned when removing a rating the user never gave.
	ErrNotRated = errors.New("user has not rated this recipe")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials is returned on login with a bad email or
	// password. Deliberately indistinguishable between the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSavedRecipes is returned when a saved-list change names at
	// least one id that does not exist or belongs to the caller. No part of
	// the change is applied.
	ErrInvalidSavedRecipes = errors.New("saved recipes update contains invalid recipe ids")
)

// Not-found errors (the referenced entity does not exist).
var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrBatchNotFound  = errors.New("recipe batch not found")
)

// Permission errors (ownership or role violations).
var (
	// ErrNotOwner is returned when a user edits or deletes a recipe they do
	// not own.
	ErrNotOwner = errors.New("you do not have permission to modify this recipe")

	// ErrPrivateRecipe is returned when rating a recipe that is not public.
	ErrPrivateRecipe = errors.New("cannot rate a private recipe")

	// ErrSelfRating is returned when a user rates their own recipe.
	ErrSelfRating = errors.New("users cannot rate their own recipes")

	// ErrSelfSave is returned when a user saves a recipe they created.
	ErrSelfSave = errors.New("cannot save your own recipe")
)
