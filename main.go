package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venuebook/config"
	"venuebook/cron"
	"venuebook/database"
	"venuebook/database/repository"
	"venuebook/database/repository/memory"
	"venuebook/database/repository/sqlite"
	"venuebook/handlers"
	"venuebook/middleware"
	"venuebook/routes"
	"venuebook/services"
	bookingSvc "venuebook/services/booking"
	venueSvc "venuebook/services/venue"
	"venuebook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitAuthCache()

	// Pick the storage driver: the embedded SQLite store is the default;
	// the memory driver mirrors the widget's browser-storage fallback.
	var (
		venueRepo   repository.VenueRepository
		slotRepo    repository.TimeSlotRepository
		bookingRepo repository.BookingRepository
	)
	switch config.AppConfig.StoreDriver {
	case "memory":
		store := memory.NewStore()
		venueRepo = store.Venues()
		slotRepo = store.TimeSlots()
		bookingRepo = store.Bookings()
		logger.Sugar().Warn("main: using in-memory store; data will not survive a restart")
	default:
		store, err := database.Open(config.AppConfig.DataDir, config.AppConfig.SeedDemo)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open database: %v", err)
		}
		defer store.Close()
		venueRepo = sqlite.NewVenueRepo(store)
		slotRepo = sqlite.NewTimeSlotRepo(store)
		bookingRepo = sqlite.NewBookingRepo(store)
	}

	// services.
	availabilityService := &services.DefaultAvailabilityService{
		Venues:   venueRepo,
		Slots:    slotRepo,
		Bookings: bookingRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.AvailabilityCacheTTLSec) * time.Second,
	}

	venueService := &venueSvc.DefaultVenueService{
		Repo:     venueRepo,
		SlotRepo: slotRepo,
	}

	reminderScheduler := cron.NewReminderScheduler()
	defer reminderScheduler.Close()
	cron.InitReminderWorker()

	bookingService := &bookingSvc.DefaultBookingService{
		Repo:         bookingRepo,
		VenueRepo:    venueRepo,
		Availability: availabilityService,
		Reminders:    reminderScheduler,
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Venue:        handlers.NewVenueHandler(venueService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		AdminAuth:    handlers.NewAdminAuthHandler(),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
