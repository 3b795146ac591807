package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spacesedan/brandpulse/config"
	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/clients/kafka_client"
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

	store := db.NewTweetStore(mongoClient.Database(databaseName()))
	if err := store.EnsureIndexes(ctx); err != nil {
		slog.Warn("[Main] Failed to ensure indexes",
			slog.String("error", err.Error()))
	}

	srv := &server{
		store:    store,
		resolver: sentiment.NewResolver(sentiment.DefaultProviders()...),
		mongo:    mongoClient,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Post("/add_tweet", srv.handleAddTweet)
	r.Get("/api/tweets", srv.handleGetTweets)
	r.Get("/api/sentiment_stats", srv.handleSentimentStats)
	r.Get("/api/brand_stats", srv.handleBrandStats)
	r.Get("/api/sentiment_timeline", srv.handleSentimentTimeline)
	r.Get("/api/emotion_analysis", srv.handleEmotionAnalysis)
	r.Get("/api/keyword_analysis", srv.handleKeywordAnalysis)
	r.Get("/api/sentiment_heatmap", srv.handleSentimentHeatmap)
	r.Post("/api/comparative_analysis", srv.handleComparativeAnalysis)

	// The async ingest route only exists when a producer is configured; the
	// synchronous /add_tweet path works without Kafka.
	if os.Getenv("KAFKA_PRODUCER_ENABLED") == "true" {
		cfg := kafka_client.GetKafkaConfig()
		if err := kafka_client.InitProducer(cfg); err != nil {
			slog.Error("[Main] Failed to initialize Kafka producer",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer kafka_client.CloseProducer()

		r.Post("/api/ingest", srv.handleIngestTweets)
	}

	bindAddr := os.Getenv("BIND_ADDR")
	if bindAddr == "" {
		bindAddr = ":8080"
	}

	httpServer := &http.Server{
		Addr:              bindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		slog.Info("[Main] API server starting", slog.String("addr", bindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Server shutdown failed",
			slog.String("error", err.Error()))
	}
}

func databaseName() string {
	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		return name
	}
	return "sentiment_db"
}

type server struct {
	store    *db.TweetStore
	resolver *sentiment.Resolver
	mongo    *mongo.Client
}
