package handlers

import (
	"net/http"

	"venuebook/services/venue"

	"github.com/gin-gonic/gin"
)

func (h *VenueHandler) ListTimeSlotsHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	slots, err := h.Service.ListTimeSlots(c.Request.Context(), venueID)
	if err != nil {
		h.respondVenueError(c, err, "Failed to fetch time slots")
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *VenueHandler) CreateTimeSlotHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	var input venue.TimeSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	slot, err := h.Service.CreateTimeSlot(c.Request.Context(), venueID, input)
	if err != nil {
		h.respondVenueError(c, err, "Failed to create time slot")
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *VenueHandler) UpdateTimeSlotHandler(c *gin.Context) {
	slotID := c.Param("timeSlotId")
	var input venue.TimeSlotUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	slot, err := h.Service.UpdateTimeSlot(c.Request.Context(), slotID, input)
	if err != nil {
		h.respondVenueError(c, err, "Failed to update time slot")
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *VenueHandler) DeleteTimeSlotHandler(c *gin.Context) {
	slotID := c.Param("timeSlotId")
	if err := h.Service.DeleteTimeSlot(c.Request.Context(), slotID); err != nil {
		h.respondVenueError(c, err, "Failed to delete time slot")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot deleted"})
}
