package handlers

import (
	"errors"
	"fmt"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-invest/internal/jobs"
	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
	"github.com/sjperalta/fintera-invest/internal/services"
	"github.com/sjperalta/fintera-invest/pkg/logger"
)

// respondError maps service and engine errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var invalidErr *projection.InvalidParameterError
	var rangeErr *projection.OutOfRangeError
	switch {
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalidErr.Error(), "field": invalidErr.Field})
	case errors.As(err, &rangeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rangeErr.Error(), "column": rangeErr.Column, "year": rangeErr.Year})
	case errors.Is(err, services.ErrLimitExceeded),
		errors.Is(err, models.ErrAmountOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, projection.ErrUnknownField),
		errors.Is(err, services.ErrUnknownCurrency),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, services.ErrSweepTooLarge),
		errors.Is(err, services.ErrEmptySweep):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, jobs.ErrWorkerStopped):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// respondBindError reports a body that could not be read or decoded
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}
