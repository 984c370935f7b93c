package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prediction-service/internal/adapters/primary/http/handlers"
	"prediction-service/internal/adapters/primary/http/middleware"
	"prediction-service/internal/adapters/secondary/artifact"
	"prediction-service/internal/adapters/secondary/events"
	"prediction-service/internal/adapters/secondary/kube"
	"prediction-service/internal/adapters/secondary/postgres"
	"prediction-service/internal/config"
	output "prediction-service/internal/core/ports/output"
	"prediction-service/internal/core/services"
	"prediction-service/internal/engine"
	"prediction-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	if err := postgres.RunMigrations(pool); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	log.Info("database schema up to date")

	// Secondary Adapters (Output Ports - Repositories)
	modelRepo := postgres.NewModelRepository(pool)
	versionRepo := postgres.NewModelVersionRepository(pool)
	predictionRepo := postgres.NewPredictionRepository(pool)

	// Artifact stores
	stores := []output.ArtifactStore{artifact.NewLocalStore(cfg.Artifact.LocalDir)}
	s3Store, err := artifact.NewS3Store(context.Background(), cfg.Artifact.S3Region, cfg.Artifact.S3Endpoint)
	if err != nil {
		log.Warnf("S3 artifact store init failed (continuing with local store only): %v", err)
	} else {
		stores = append(stores, s3Store)
	}

	registry := engine.NewRegistry(stores...)

	// Event Publisher (Optional - based on config)
	var publisher output.EventPublisher
	if cfg.Events.Enabled {
		pub, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			log.Warnf("NATS publisher init failed (continuing without events): %v", err)
		} else {
			publisher = pub
			defer publisher.Close()
			log.Info("NATS event publisher initialized")
		}
	} else {
		log.Info("event publishing disabled")
	}

	// Kubernetes serving probe (Optional - based on config)
	kubeClient, err := kube.NewKubeClient(&cfg.Kubernetes)
	if err != nil {
		log.Warnf("kube client init failed (continuing without serving probe): %v", err)
		kubeClient, _ = kube.NewKubeClient(&config.KubernetesConfig{})
	} else if kubeClient.IsAvailable() {
		log.Info("kubernetes serving probe initialized")
	} else {
		log.Info("kubernetes serving probe disabled")
	}

	// Metrics collector and async dispatcher
	collector := metrics.NewCollector()
	dispatcher := services.NewDispatcher(cfg.Engine.Workers, cfg.Engine.QueueSize, collector)
	dispatcher.Start()
	defer dispatcher.Stop()

	// Core Services (Application Layer)
	modelSvc := services.NewModelService(modelRepo)
	versionSvc := services.NewModelVersionService(versionRepo, modelRepo, registry)
	predictSvc := services.NewPredictService(modelRepo, versionRepo, predictionRepo, registry, collector, publisher, dispatcher, cfg.Engine.PredictTimeout)
	predictionSvc := services.NewPredictionService(predictionRepo)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(modelSvc, versionSvc, predictSvc, predictionSvc, collector, kubeClient)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1")
	api.Use(middleware.APIKey(cfg.Auth.APIKey))
	h.RegisterRoutes(api)

	// Scrape target lives outside the API-key gate.
	router.GET("/metrics", h.Metrics)

	// Health check with DB ping
	router.GET("/health", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "predictors_loaded": registry.Loaded()})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
