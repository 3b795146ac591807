package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/clients/kafka_client"
	"github.com/spacesedan/brandpulse/internal/consumers"
	"github.com/spacesedan/brandpulse/internal/db"
	"github.com/spacesedan/brandpulse/internal/logging"
	"github.com/spacesedan/brandpulse/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoClient, err := clients.NewMongoClient(ctx, mongoURI)
	if err != nil {
		slog.Error("[Main] Failed to connect to MongoDB",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			slog.Warn("[Main] Mongo disconnect failed",
				slog.String("error", err.Error()))
		}
	}()

	databaseName := os.Getenv("MONGODB_DATABASE")
	if databaseName == "" {
		databaseName = "sentiment_db"
	}

	store := db.NewTweetStore(mongoClient.Database(databaseName))
	if err := store.EnsureIndexes(ctx); err != nil {
		slog.Warn("[Main] Failed to ensure indexes",
			slog.String("error", err.Error()))
	}

	// Dedupe is optional: without Valkey the consumer still works, it just
	// re-classifies replayed texts.
	var dedupe consumers.DedupeCache
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		valkeyClient, err := clients.NewValkeyClient()
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, continuing without dedupe",
				slog.String("error", err.Error()))
		} else {
			defer valkeyClient.Close()
			dedupe = valkeyClient
		}
	}

	resolver := sentiment.NewResolver(sentiment.DefaultProviders()...)

	tweetConsumer := consumers.NewTweetConsumer(store, resolver, dedupe)

	cfg := kafka_client.GetKafkaConfig()
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_RAW_TWEETS, tweetConsumer.Start)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
