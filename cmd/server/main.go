package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/questline/questline/internal/config"
	"github.com/questline/questline/internal/handlers/httpapi"
	"github.com/questline/questline/internal/notify"
	"github.com/questline/questline/internal/repositories/catalogs"
	"github.com/questline/questline/internal/repositories/explorations"
	progressrepo "github.com/questline/questline/internal/repositories/progress"
	"github.com/questline/questline/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Log.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		})
		log.Printf("Logging to %s", cfg.Log.File)
	}

	providerConfig := &services.ProviderConfig{}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if an address is provided
	if cfg.Redis.Addr != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.Addr)

		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
			cancel()
			log.Printf("Failed to connect to Redis: %v", pingErr)
			log.Println("Falling back to in-memory repositories")
			redisClient = nil
		} else {
			cancel()
			log.Println("Successfully connected to Redis")

			providerConfig.CatalogRepository = catalogs.NewRedisRepository(&catalogs.RedisRepoConfig{Client: redisClient})
			providerConfig.ExplorationRepository = explorations.NewRedisRepository(&explorations.RedisRepoConfig{Client: redisClient})
			providerConfig.ProgressRepository = progressrepo.NewRedisRepository(&progressrepo.RedisRepoConfig{Client: redisClient})

			log.Println("Using Redis for persistence")
		}
	} else {
		log.Println("No REDIS_ADDR found, using in-memory repositories")
	}

	if providerConfig.CatalogRepository == nil {
		providerConfig.CatalogRepository = catalogs.NewInMemoryRepository()
	}

	// Seed the dungeon catalog from the YAML file
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := catalogs.SeedFromFile(ctx, providerConfig.CatalogRepository, cfg.Catalog.Path); err != nil {
			cancel()
			log.Fatalf("Failed to seed dungeon catalog from %s: %v", cfg.Catalog.Path, err)
		}
		cancel()
		log.Printf("Seeded dungeon catalog from %s", cfg.Catalog.Path)
	}

	// Websocket hub for out-of-band pushes (level ups, checkpoints)
	hub := notify.NewHub()
	providerConfig.Notifier = hub

	serviceProvider := services.NewProvider(providerConfig)

	handler := httpapi.NewHandler(&httpapi.HandlerConfig{
		Services: serviceProvider,
		Hub:      hub,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
