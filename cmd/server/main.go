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

	"github.com/citytoll/service-tollfee/internal/application"
	"github.com/citytoll/service-tollfee/internal/config"
	"github.com/citytoll/service-tollfee/internal/database"
	"github.com/citytoll/service-tollfee/internal/domain/toll"
	"github.com/citytoll/service-tollfee/internal/events"
	"github.com/citytoll/service-tollfee/internal/handler"
	"github.com/citytoll/service-tollfee/internal/kafka"
	"github.com/citytoll/service-tollfee/internal/logger"
	"github.com/citytoll/service-tollfee/internal/middleware"
	"github.com/citytoll/service-tollfee/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-tollfee")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-tollfee",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&repository.VehicleModel{}); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Build toll policies: the built-in reference tariff unless a tariff
	// file is configured.
	var (
		tariff   toll.TariffPolicy
		calendar toll.CalendarPolicy
	)
	if cfg.TariffPath != "" {
		tariff, calendar, err = config.LoadTariff(cfg.TariffPath)
		if err != nil {
			log.Fatal("failed to load tariff file", zap.Error(err))
		}
		log.Info("loaded tariff file", zap.String("path", cfg.TariffPath))
	} else {
		tariff = toll.NewGothenburgTariff()
		calendar = toll.NewSwedishCalendar()
	}
	calculator := toll.NewCalculator(tariff, calendar, toll.NewCategoryExemptionPolicy())

	// Initialize Kafka producer
	producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize repositories and services
	vehicleRepo := repository.NewGormVehicleRepository(db)
	vehicleService := application.NewVehicleService(vehicleRepo, log)

	publisher := events.NewTollEventPublisher(producer, log)
	assessmentService := application.NewAssessmentService(vehicleRepo, calculator, publisher, log)

	// Initialize registry event consumer
	groupID := cfg.KafkaConfig.GroupPrefix + "tollfee-service"
	registryConsumer := events.NewRegistryEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		vehicleService,
		log,
	)
	defer func() { _ = registryConsumer.Close() }()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	healthHandler := handler.NewHealthHandler(db, "service-tollfee")
	healthHandler.RegisterRoutes(router)

	handler.NewAssessmentHandler(assessmentService).RegisterRoutes(&router.RouterGroup)
	handler.NewVehicleHandler(vehicleService).RegisterRoutes(&router.RouterGroup)
	handler.NewAdminHandler(vehicleService).RegisterRoutes(&router.RouterGroup)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run server and consumer until a shutdown signal arrives.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("starting registry event consumer")
		if err := registryConsumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("registry event consumer error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down service-tollfee...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server forced shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal("service error", zap.Error(err))
	}

	log.Info("service-tollfee stopped")
}
