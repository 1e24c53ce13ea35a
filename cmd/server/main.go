package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spotlog/service-planner/internal/application"
	"github.com/spotlog/service-planner/internal/client"
	"github.com/spotlog/service-planner/internal/config"
	"github.com/spotlog/service-planner/internal/domain/place"
	plannerEvents "github.com/spotlog/service-planner/internal/events"
	"github.com/spotlog/service-planner/internal/handler"
	"github.com/spotlog/service-planner/internal/platform/database"
	"github.com/spotlog/service-planner/internal/platform/health"
	"github.com/spotlog/service-planner/internal/platform/kafka"
	"github.com/spotlog/service-planner/internal/platform/logger"
	"github.com/spotlog/service-planner/internal/platform/middleware"
	"github.com/spotlog/service-planner/internal/repository"
)

const serviceName = "service-planner"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("store_backend", cfg.StoreBackend),
	)

	// Open the place list store
	store, pinger, closeStore := openStore(cfg, log)
	defer closeStore()

	// Initialize Kafka producer
	var publisher application.EventPublisher
	var kafkaProducer *kafka.Producer
	if cfg.KafkaConfig.Enabled {
		kafkaProducer = kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	}

	// Initialize remote clients
	session := &http.Client{Timeout: cfg.HTTPClientTimeout}
	placeClient := client.NewPlaceClient(cfg.PlaceAPIBaseURL, session, log)
	routeClient := client.NewRouteClient(cfg.RouteAPIBaseURL, session, log)

	// Initialize application service
	plannerService := application.NewPlannerService(
		store,
		placeClient,
		routeClient,
		publisher,
		log,
	)
	plannerService.SetLookupTimeout(cfg.HTTPClientTimeout)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 2*cfg.HTTPClientTimeout)
	plannerService.Load(loadCtx)
	loadCancel()

	// Initialize and start place event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.KafkaConfig.Enabled {
		groupID := cfg.KafkaConfig.GroupPrefix + "planner-service"
		placeConsumer := plannerEvents.NewPlaceEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			plannerService,
			log,
		)
		defer func() { _ = placeConsumer.Close() }()

		go func() {
			log.Info("starting place event consumer")
			if err := placeConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("place event consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	placeHandler := handler.NewPlaceHandler(plannerService)
	routeHandler := handler.NewRouteHandler(plannerService)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(serviceName, map[string]health.Pinger{
		cfg.StoreBackend: pinger,
	})
	healthHandler.RegisterRoutes(router)

	// Register routes
	placeHandler.RegisterRoutes(&router.RouterGroup)
	routeHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.HTTPClientTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}

type pingStore interface {
	place.ListStore
	health.Pinger
}

// openStore connects the configured backend and returns the store, its
// health pinger and a close func.
func openStore(cfg *config.ServiceConfig, log *zap.Logger) (place.ListStore, health.Pinger, func()) {
	if cfg.StoreBackend == config.StoreBackendPostgres {
		dbConfig := database.PostgresConfig{
			Host:     cfg.DBConfig.Host,
			Port:     cfg.DBConfig.Port,
			User:     cfg.DBConfig.User,
			Password: cfg.DBConfig.Password,
			DBName:   cfg.DBConfig.DBName,
			SSLMode:  cfg.DBConfig.SSLMode,
		}
		db, err := database.Connect(dbConfig, log)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}

		// Run database migrations
		if cfg.AppEnv == "development" {
			if err := db.AutoMigrate(&repository.KVEntryModel{}); err != nil {
				log.Fatal("failed to run auto-migration", zap.Error(err))
			}
			log.Info("database migration completed (dev auto-migrate)")
		} else {
			if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", log); err != nil {
				log.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		var store pingStore = repository.NewGormPlaceListStore(db, cfg.StoreKey)
		return store, store, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConfig.Addr,
		Password: cfg.RedisConfig.Password,
		DB:       cfg.RedisConfig.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis not reachable at startup, place list will start empty", zap.Error(err))
	}

	var store pingStore = repository.NewRedisPlaceListStore(rdb, cfg.StoreKey)
	return store, store, func() { _ = rdb.Close() }
}
