// Package api contains the gin handlers. Handlers bind and validate
// transport payloads, call the services, and translate service errors into
// HTTP statuses; business rules live in the service layer.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/service"
)

// statusForError maps service-level sentinel errors onto HTTP statuses.
// Unrecognized errors are treated as upstream failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrNotRated),
		errors.Is(err, service.ErrInvalidSavedRecipes):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrPrivateRecipe),
		errors.Is(err, service.ErrSelfRating),
		errors.Is(err, service.ErrSelfSave):
		return http.StatusForbidden
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the standard error payload for a service error.
func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// currentUserID pulls the authenticated user id placed in the context by the
// auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
