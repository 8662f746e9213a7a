package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripapi/internal/config"
	"tripapi/internal/handlers"
	"tripapi/internal/middleware"
	"tripapi/internal/repositories/mongodb"
	"tripapi/internal/services"
	"tripapi/pkg/cache"
	"tripapi/pkg/database"
	"tripapi/pkg/logger"
	"tripapi/pkg/metrics"
	"tripapi/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  "json",
		Output:  "stdout",
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	mongoDB, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close()

	if err := database.NewMigrator(mongoDB.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		IdleTimeout:  cfg.Redis.IdleTimeout,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Repositories
	transporterRepo := mongodb.NewTransporterRepository(mongoDB.Database)
	vehicleRepo := mongodb.NewVehicleRepository(mongoDB.Database, redisCache)
	driverRepo := mongodb.NewDriverRepository(mongoDB.Database)
	planRepo := mongodb.NewTripPlanRepository(mongoDB.Database)
	tripRepo := mongodb.NewTripRepository(mongoDB.Database)
	bookingRepo := mongodb.NewBookingRepository(mongoDB.Database)

	appMetrics := metrics.NewMetrics("tripapi")

	// Services
	planService := services.NewTripPlanService(
		planRepo, tripRepo, vehicleRepo, driverRepo, transporterRepo,
		mongoDB, time.Now, appMetrics, appLogger,
		cfg.Trip.WindowDays, cfg.Trip.EverydayKeyword,
	)
	tripService := services.NewTripService(tripRepo, vehicleRepo, appMetrics, appLogger)
	bookingService := services.NewBookingService(bookingRepo, tripRepo, transporterRepo, mongoDB, appLogger)
	searchService := services.NewSearchService(
		tripRepo, vehicleRepo, redisCache, appMetrics, appLogger,
		cfg.Search.CacheTTL, cfg.Search.RankThreshold,
	)
	fleetService := services.NewFleetService(transporterRepo, vehicleRepo, driverRepo, appLogger)

	// Handlers
	planHandler := handlers.NewTripPlanHandler(planService)
	tripHandler := handlers.NewTripHandler(tripService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	searchHandler := handlers.NewSearchHandler(searchService)
	fleetHandler := handlers.NewFleetHandler(fleetService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(redisCache, cfg.Security.RateLimitPerMinute))
	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.Fatalf("Failed to set trusted proxies: %v", err)
		}
	}

	v1 := router.Group("/api/v1")
	{
		routes.SetupTripPlanRoutes(v1, planHandler, tripHandler)
		routes.SetupTripRoutes(v1, tripHandler)
		routes.SetupBookingRoutes(v1, bookingHandler)
		routes.SetupSearchRoutes(v1, searchHandler)
		routes.SetupFleetRoutes(v1, fleetHandler, planHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := mongoDB.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Background stabilization keeps every plan's trip window full even
	// when nobody edits the plan.
	stabilizeCtx, stopStabilize := context.WithCancel(context.Background())
	go runStabilizer(stabilizeCtx, planService, appLogger, cfg.Trip.StabilizeEvery)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(map[string]interface{}{
			"port":        cfg.App.Port,
			"environment": cfg.App.Environment,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	stopStabilize()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func runStabilizer(ctx context.Context, planService services.TripPlanService, log *logger.Logger, every time.Duration) {
	if every <= 0 {
		every = 6 * time.Hour
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := planService.StabilizeAll(ctx); err != nil {
				log.Errorf("Window stabilization failed: %v", err)
			}
		}
	}
}
