package routes

import (
	"net/http"
	"time"

	"venuebook/handlers"
	"venuebook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Venue        *handlers.VenueHandler
	Booking      *handlers.BookingHandler
	Availability *handlers.AvailabilityHandler
	AdminAuth    *handlers.AdminAuthHandler
}

// RegisterPublicRoutes registers the endpoints the embeddable widget calls.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/venues", hb.Venue.ListVenuesHandler)
		api.GET("/venues/:venueId", hb.Venue.GetVenueHandler)
		api.GET("/venues/:venueId/timeslots", hb.Venue.ListTimeSlotsHandler)
		api.GET("/venues/:venueId/availability", hb.Availability.GetAvailabilityHandler)
		api.POST("/venues/:venueId/bookings", hb.Booking.CreateBookingHandler)
		api.DELETE("/bookings/:bookingId", hb.Booking.CancelBookingHandler)
	}
}

// RegisterAdminRoutes sets up the operator console endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.POST("/login", hb.AdminAuth.LoginHandler)

		// Protected routes (require an operator token).
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("/logout", hb.AdminAuth.LogoutHandler)

		admin.POST("/venues", hb.Venue.CreateVenueHandler)
		admin.PUT("/venues/:venueId", hb.Venue.UpdateVenueHandler)
		admin.DELETE("/venues/:venueId", hb.Venue.DeleteVenueHandler)

		admin.POST("/venues/:venueId/timeslots", hb.Venue.CreateTimeSlotHandler)
		admin.PUT("/timeslots/:timeSlotId", hb.Venue.UpdateTimeSlotHandler)
		admin.DELETE("/timeslots/:timeSlotId", hb.Venue.DeleteTimeSlotHandler)

		admin.GET("/venues/:venueId/bookings", hb.Booking.ListBookingsHandler)
		admin.GET("/venues/:venueId/bookings/stats", hb.Booking.StatsHandler)
		admin.GET("/venues/:venueId/bookings/export", hb.Booking.ExportBookingsHandler)
		admin.GET("/bookings/:bookingId", hb.Booking.GetBookingHandler)
		admin.PUT("/bookings/:bookingId", hb.Booking.UpdateBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// The widget is embedded on third-party pages, so CORS stays open.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
