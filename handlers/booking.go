package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"venuebook/services/booking"
	"venuebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a BookingHandler with the given service.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	created, err := h.Service.CreateBooking(c.Request.Context(), venueID, input)
	if err != nil {
		h.respondBookingError(c, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListBookingsHandler returns a venue's bookings, optionally bounded by
// startDate/endDate query parameters (RFC 3339 or YYYY-MM-DD). With
// stats=true it returns the aggregate dashboard counts instead.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	venueID := c.Param("venueId")

	if c.Query("stats") == "true" {
		stats, err := h.Service.Stats(c.Request.Context(), venueID)
		if err != nil {
			h.respondBookingError(c, err, "Failed to compute booking stats")
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}

	start, err := parseTimeParam(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate", "message": err.Error()})
		return
	}
	end, err := parseTimeParam(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate", "message": err.Error()})
		return
	}

	bookings, err := h.Service.ListBookings(c.Request.Context(), venueID, start, end)
	if err != nil {
		h.respondBookingError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	found, err := h.Service.GetBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		h.respondBookingError(c, err, "Failed to fetch booking")
		return
	}
	c.JSON(http.StatusOK, found)
}

// UpdateBookingHandler applies an operator status change.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var input booking.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	updated, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("bookingId"), input)
	if err != nil {
		h.respondBookingError(c, err, "Failed to update booking")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBookingHandler cancels on behalf of the customer; the cancellation
// cutoff applies. The operator path uses UpdateBookingHandler, which has no
// cutoff.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	force := c.GetBool("isAdmin")
	if err := h.Service.CancelBooking(c.Request.Context(), c.Param("bookingId"), force); err != nil {
		h.respondBookingError(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

func (h *BookingHandler) StatsHandler(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context(), c.Param("venueId"))
	if err != nil {
		h.respondBookingError(c, err, "Failed to compute booking stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportBookingsHandler streams the venue's bookings as a CSV download.
func (h *BookingHandler) ExportBookingsHandler(c *gin.Context) {
	venueID := c.Param("venueId")
	filename := fmt.Sprintf("%s-bookings-%s.csv", venueID, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.Service.ExportCSV(c.Request.Context(), venueID, c.Writer); err != nil {
		utils.GetLogger().Error("Failed to export bookings", zap.String("venueId", venueID), zap.Error(err))
		// Headers are already out; nothing useful left to send.
		c.Abort()
	}
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, booking.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
	case errors.Is(err, booking.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrBookingCapReached):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrCancellationWindowClosed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		utils.GetLogger().Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
