// File: agendly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendly/config"
	"agendly/cron"
	"agendly/database"
	schedulerRepo "agendly/database/repository/scheduler"
	"agendly/handlers"
	"agendly/middleware"
	"agendly/routes"
	"agendly/services/notification"
	"agendly/services/payment"
	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	schedRepo := schedulerRepo.NewMongoSchedulerRepo()
	if err := schedRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure scheduler indexes: %v", err)
	}

	location := config.BusinessLocation()

	// services.
	detector := &scheduling.ConflictDetector{
		Repo: schedRepo,
		Policy: scheduling.ConflictPolicy{
			EnforceClientOverlap: config.AppConfig.EnforceClientOverlap,
			ExclusiveServiceIDs:  toSet(config.AppConfig.ExclusiveServiceIDs),
		},
	}

	availability := &scheduling.AvailabilityCalculator{
		Repo:     schedRepo,
		Location: location,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
	}

	var processor payment.Processor
	if config.AppConfig.StripeKey != "" {
		processor = payment.NewStripeProcessor(logger, "usd")
	}

	reminderLead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	reminders := cron.NewReminderEnqueuer(reminderLead)
	defer reminders.Close()

	schedulingService := &scheduling.DefaultSchedulingService{
		Repo:         schedRepo,
		Detector:     detector,
		Availability: availability,
		Lifecycle:    scheduling.AppointmentLifecycle{},
		Payments:     processor,
		Reminders:    reminders,
		GraceWindow:  time.Duration(config.AppConfig.BookingGraceMinutes) * time.Minute,
		Location:     location,
	}

	notificationService := notification.LogNotificationService{}
	cron.InitReminderWorker(schedRepo, notificationService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient()},
		database.GetClient(),
	)

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService, logger)
	routes.RegisterRoutes(router, schedulingHandler)

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

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
