package handlers

import (
	"errors"
	"net/http"

	"assignment-service/internal/models"
	"assignment-service/internal/validation"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Every
// failure body carries a human-readable message.
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message, "field": verr.Field})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
	case errors.Is(err, models.ErrAlreadySubmitted):
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already submitted"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authorized"})
	case errors.Is(err, models.ErrUploadFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Image could not be uploaded"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
	}
}
