package main

import (
	"log"
	"time"

	"roomrent/config"
	"roomrent/jobs"
	"roomrent/repositories"
	"roomrent/routes"
	"roomrent/services"
	"roomrent/services/logger"
	"roomrent/services/notification"
	"roomrent/validator"
)

func main() {
	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	settings := config.LoadSettings()
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if settings.LogDir != "" {
		logFile, err := logger.UseLogFile(settings.LogDir, time.Now())
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
	}
	appLogger := logger.NewDefaultLogger(logger.ParseLevel(settings.LogLevel))

	if err := validator.RegisterBindings(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	store := repositories.NewStore(config.DB)
	locker := services.NewRoomLocker(config.RedisClient, settings.LockTTL, appLogger)
	cache := services.NewRoomCache(config.RedisClient, settings.CacheTTL)
	tokens := services.NewTokenService(settings.JWTSecret, settings.JWTTTL)

	bookingService := services.NewBookingService(services.BookingServiceOptions{
		Store:      store,
		Locker:     locker,
		Authorizer: services.NewRoleAuthorizer(),
		Notifier:   notification.NewMelodyService(m),
		Cache:      cache,
		Logger:     appLogger,
	})
	roomService := services.NewRoomService(services.RoomServiceOptions{
		Store:  store,
		Locker: locker,
		Cache:  cache,
		Logger: appLogger,
	})
	adminService := services.NewAdminService(services.AdminServiceOptions{
		Store:  store,
		Cache:  cache,
		Logger: appLogger,
	})
	authService := services.NewAuthService(services.AuthServiceOptions{
		Store:  store,
		Tokens: tokens,
		Logger: appLogger,
	})

	if err := jobs.InitCronJobs(c, settings.CompletionCron, bookingService, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	routes.SetupRoutes(router, routes.Deps{
		Store:        store,
		Tokens:       tokens,
		Auth:         authService,
		Rooms:        roomService,
		Bookings:     bookingService,
		Admin:        adminService,
		Melody:       m,
		Logger:       appLogger,
		CookieSecure: settings.CookieSecure,
	})

	log.Println("Server starting on port " + settings.Port + "...")
	if err := router.Run(":" + settings.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
