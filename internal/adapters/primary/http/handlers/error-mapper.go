package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prediction-service/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrVersionNotFound),
		errors.Is(err, domain.ErrPredictionNotFound),
		errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrServingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrModelNameConflict),
		errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrNoActiveVersion):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrInvalidVersionName),
		errors.Is(err, domain.ErrInvalidArtifactURI),
		errors.Is(err, domain.ErrUnsupportedFramework),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrVersionNotReady),
		errors.Is(err, domain.ErrArtifactInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrQueueFull),
		errors.Is(err, domain.ErrEngineStopped),
		errors.Is(err, domain.ErrServingProbeDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
