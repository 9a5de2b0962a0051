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

	"price-catalog/config"
	"price-catalog/internal/api"
	"price-catalog/internal/auth"
	"price-catalog/internal/broker"
	"price-catalog/internal/imagecache"
	"price-catalog/internal/provider"
	"price-catalog/internal/redisclient"
	"price-catalog/internal/service"
	"price-catalog/internal/store"
	"price-catalog/internal/util"
	"price-catalog/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting price catalog service")

	tp, err := util.InitTracer("price-catalog", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected, migrations applied")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicCatalog)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	imageCache := imagecache.NewCache(redisClient, cfg.CDN.FetchBaseURL)
	providerClient := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.AppKey, cfg.Provider.Timeout)

	catalogService := service.NewCatalogService(db, eventPublisher)
	lookupService := service.NewLookupService(db, providerClient, imageCache)
	userService := service.NewUserService(db)

	verifier := auth.NewHTTPVerifier(cfg.Auth.VerifyURL)
	authService := auth.NewService(verifier, redisClient, cfg.Auth.SessionTTL)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	catalogConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicCatalog, cfg.Kafka.ConsumerGroup)
	catalogWorker := worker.NewCatalogWorker(catalogConsumer, imageCache)
	go func() {
		if err := catalogWorker.Start(workerCtx); err != nil {
			log.Printf("Catalog worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(catalogService, lookupService, userService, authService,
		cfg.Server.Env == "production")
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	catalogWorker.Stop()

	log.Println("Server exited")
}
