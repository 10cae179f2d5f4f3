package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/state"
)

// respondCommandError maps processor errors to HTTP statuses.
func respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, state.ErrBlankTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, state.ErrBoardNotFound),
		errors.Is(err, state.ErrColumnNotFound),
		errors.Is(err, state.ErrTaskNotFound),
		errors.Is(err, state.ErrSubTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply command"})
	}
}
