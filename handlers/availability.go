package handlers

import (
	"errors"
	"net/http"

	"venuebook/database/repository"
	"venuebook/services"
	"venuebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the resolved-slot endpoint the booking
// widget polls.
type AvailabilityHandler struct {
	Service services.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler with the given service.
func NewAvailabilityHandler(svc services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailabilityHandler returns the bookable windows for a venue on one
// date. Results are a point-in-time snapshot: windows that start in the
// past are absent, conflicted windows are present but flagged unavailable.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: date"})
		return
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), venueID, date)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		case errors.Is(err, services.ErrBeyondBookingWindow), errors.Is(err, services.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Failed to resolve availability",
				zap.String("venueId", venueID), zap.String("date", date), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve availability"})
		}
		return
	}
	c.JSON(http.StatusOK, slots)
}
