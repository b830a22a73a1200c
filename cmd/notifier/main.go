package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cargotrack/cmd"
	"cargotrack/internal/adapters/out/itemhttp"
	"cargotrack/internal/adapters/out/kafka"
	"cargotrack/internal/adapters/out/riderhttp"
	"cargotrack/internal/core/application/events"
	"cargotrack/internal/notifier"

	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	consumer, err := kafka.NewConsumer(configs.KafkaBrokers(), configs.KafkaConsumerGroup, events.Topics())
	if err != nil {
		logger.Error("failed to create kafka consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	items, err := itemhttp.NewClient(configs.ItemServiceURL, configs.ItemServiceTimeout)
	if err != nil {
		logger.Error("failed to create item lookup client", "error", err)
		os.Exit(1)
	}

	riders, err := riderhttp.NewClient(configs.RiderServiceURL, configs.RiderServiceTimeout)
	if err != nil {
		logger.Error("failed to create rider catalog client", "error", err)
		os.Exit(1)
	}

	dispatcher, err := notifier.NewDispatcher(
		kafkaConsumerAdapter{consumer: consumer},
		items,
		riders,
		notifier.NewSMSChannel(logger),
		notifier.NewEmailChannel(logger),
		notifier.NewPushChannel(logger),
		configs.OpsEmail,
		logger,
	)
	if err != nil {
		logger.Error("failed to create dispatcher", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("notifier started", "topics", events.Topics(), "group", configs.KafkaConsumerGroup)

	if err = dispatcher.Run(ctx); err != nil {
		logger.Error("dispatcher stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("notifier stopped")
}

// kafkaConsumerAdapter narrows the kafka consumer to the dispatcher contract.
type kafkaConsumerAdapter struct {
	consumer *kafka.Consumer
}

func (a kafkaConsumerAdapter) Fetch(ctx context.Context) (string, []byte, error) {
	message, err := a.consumer.Fetch(ctx)
	if err != nil {
		return "", nil, err
	}
	return message.Topic, message.Payload, nil
}

func (a kafkaConsumerAdapter) Close() error {
	return a.consumer.Close()
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	return cmd.Config{
		KafkaHosts:          os.Getenv("KAFKA_HOSTS"),
		KafkaConsumerGroup:  envOrDefault("KAFKA_CONSUMER_GROUP", "cargotrack-notifier"),
		RiderServiceURL:     os.Getenv("RIDER_SERVICE_URL"),
		RiderServiceTimeout: durationOrDefault("RIDER_SERVICE_TIMEOUT", 5*time.Second),
		ItemServiceURL:      os.Getenv("ITEM_SERVICE_URL"),
		ItemServiceTimeout:  durationOrDefault("ITEM_SERVICE_TIMEOUT", 5*time.Second),
		OpsEmail:            envOrDefault("OPS_EMAIL", "ops@cargotrack.example"),
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
