package handlers

import (
	"errors"
	"net/http"

	"venuebook/services/venue"
	"venuebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VenueHandler exposes venue and template-slot management endpoints.
type VenueHandler struct {
	Service venue.VenueService
}

// NewVenueHandler creates a VenueHandler with the given service.
func NewVenueHandler(svc venue.VenueService) *VenueHandler {
	return &VenueHandler{Service: svc}
}

func (h *VenueHandler) ListVenuesHandler(c *gin.Context) {
	venues, err := h.Service.ListVenues(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list venues", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch venues"})
		return
	}
	c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) GetVenueHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	found, err := h.Service.GetVenue(c.Request.Context(), venueID)
	if err != nil {
		h.respondVenueError(c, err, "Failed to fetch venue")
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *VenueHandler) CreateVenueHandler(c *gin.Context) {
	var input venue.CreateVenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	created, err := h.Service.CreateVenue(c.Request.Context(), input)
	if err != nil {
		h.respondVenueError(c, err, "Failed to create venue")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *VenueHandler) UpdateVenueHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	var input venue.UpdateVenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	updated, err := h.Service.UpdateVenue(c.Request.Context(), venueID, input)
	if err != nil {
		h.respondVenueError(c, err, "Failed to update venue")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *VenueHandler) DeleteVenueHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	if err := h.Service.DeactivateVenue(c.Request.Context(), venueID); err != nil {
		h.respondVenueError(c, err, "Failed to delete venue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venue deactivated"})
}

func (h *VenueHandler) respondVenueError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, venue.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
	case errors.Is(err, venue.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
	case errors.Is(err, venue.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.GetLogger().Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
