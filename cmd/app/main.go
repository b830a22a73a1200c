package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cargotrack/cmd"
	cargohttp "cargotrack/internal/adapters/in/http"
	"cargotrack/internal/adapters/out/kafka"
	"cargotrack/internal/adapters/out/postgres/batchrepo"
	"cargotrack/internal/adapters/out/postgres/deliveryrepo"
	"cargotrack/internal/adapters/out/postgres/itemrepo"
	"cargotrack/internal/adapters/out/riderhttp"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = gormDB.AutoMigrate(
		&batchrepo.BatchDTO{},
		&itemrepo.ItemDTO{},
		&deliveryrepo.DeliveryDTO{},
	); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	publisher, err := kafka.NewPublisher(configs.KafkaBrokers())
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	riderCatalog, err := riderhttp.NewClient(configs.RiderServiceURL, configs.RiderServiceTimeout)
	if err != nil {
		logger.Error("failed to create rider catalog client", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, riderCatalog, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	server := cargohttp.NewServer(
		root.CreateCreateBatchCommandHandler(),
		root.CreateAssignDeliveryCommandHandler(),
		root.CreateMarkPickedUpCommandHandler(),
		root.CreateMarkDeliveredCommandHandler(),
		root.CreateMarkFailedCommandHandler(),
		root.CreateCheckInItemCommandHandler(),
		root.CreateGetBatchQueryHandler(),
		root.CreateListBatchItemsQueryHandler(),
		root.CreateListItemsQueryHandler(),
		root.CreateGetItemQueryHandler(),
	)

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if serveErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", serveErr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              envOrDefault("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           envOrDefault("DB_SSLMODE", "disable"),
		KafkaHosts:          os.Getenv("KAFKA_HOSTS"),
		KafkaConsumerGroup:  envOrDefault("KAFKA_CONSUMER_GROUP", "cargotrack-notifier"),
		RiderServiceURL:     os.Getenv("RIDER_SERVICE_URL"),
		RiderServiceTimeout: durationOrDefault("RIDER_SERVICE_TIMEOUT", 5*time.Second),
		ItemServiceURL:      os.Getenv("ITEM_SERVICE_URL"),
		ItemServiceTimeout:  durationOrDefault("ITEM_SERVICE_TIMEOUT", 5*time.Second),
		OpsEmail:            envOrDefault("OPS_EMAIL", "ops@cargotrack.example"),
		ETAWindow:           durationOrDefault("ETA_WINDOW", 48*time.Hour),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
