// File: caresched/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caresched/config"
	"caresched/cron"
	"caresched/database"
	holdRepoPkg "caresched/database/repository/hold"
	sessionRepoPkg "caresched/database/repository/session"
	"caresched/handlers"
	"caresched/middleware"
	"caresched/routes"
	"caresched/services/geocode"
	holdSvc "caresched/services/hold"
	"caresched/services/scheduling"
	"caresched/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitHoldCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.CorrelationMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	holdRepo := holdRepoPkg.NewMongoHoldRepo()
	if err := holdRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure hold indexes: %v", err)
	}
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()

	// services.
	geoService := geocode.NewService(logger)
	if !config.AppConfig.GeocodingEnabled {
		enabled := false
		geoService.Configure(geocode.Config{Enabled: &enabled})
	}

	engine := scheduling.NewEngine(geoService, logger, config.AppConfig.StandardSessionMinutes)
	engine.MaxWindowDays = config.AppConfig.ScheduleWindowMaxDays

	holdService := &holdSvc.DefaultHoldService{
		Repo:        holdRepo,
		CacheClient: utils.GetHoldCacheClient(),
		Logger:      logger,
		TTL:         time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute,
	}

	scheduleHandler := handlers.NewScheduleHandler(engine, sessionRepo, logger)
	holdHandler := handlers.NewHoldHandler(holdService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionRepo, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GenerateSchedule:   scheduleHandler.GenerateSchedule,
		ClearScheduleCache: scheduleHandler.ClearScheduleCache,

		AcquireHold: holdHandler.AcquireHold,
		GetHold:     holdHandler.GetHold,
		ReleaseHold: holdHandler.ReleaseHold,
		ConfirmHold: holdHandler.ConfirmHold,

		GetSession: sessionHandler.GetSession,

		Health: handlers.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background maintenance.
	cron.InitHoldSweeper(holdRepo, logger)
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache": utils.GetCacheClient(),
			"holds": utils.GetHoldCacheClient(),
		},
		database.MongoClient,
		logger,
	)

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
