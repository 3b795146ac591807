package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/brandpulse/internal/clients/kafka_client"
	"github.com/spacesedan/brandpulse/internal/db"
	"github.com/spacesedan/brandpulse/internal/models"
	"github.com/spacesedan/brandpulse/internal/sentiment"
)

const (
	queryTimeout = 10 * time.Second

	// emotion analysis re-scores texts on every call, so the input is capped
	emotionAnalysisLimit = 50

	defaultPageSize = 10
	maxPageSize     = 100
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.mongo.Ping(ctx, nil); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleAddTweet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	var request models.TweetIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(request.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "tweet text is required"})
		return
	}

	result := s.resolver.Resolve(ctx, request.Text)

	tweet, err := s.store.InsertTweet(ctx, request.Text, request.Brand, result)
	if err != nil {
		slog.Error("[API] Failed to store tweet",
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store tweet"})
		return
	}

	writeJSON(w, http.StatusOK, tweet)
}

func (s *server) handleGetTweets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	page := clampInt(r.URL.Query().Get("page"), 1, 1<<31-1)
	limit := clampInt(r.URL.Query().Get("limit"), defaultPageSize, maxPageSize)

	tweets, err := s.store.GetTweets(ctx, page, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, tweets)
}

func (s *server) handleSentimentStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	stats, err := s.store.SentimentStats(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleBrandStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	stats, err := s.store.BrandStats(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleSentimentTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	timeline, err := s.store.SentimentTimeline(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, timeline)
}

func (s *server) handleEmotionAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	tweets, err := s.store.GetRecentTweets(ctx, emotionAnalysisLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, sentiment.AnalyzeEmotions(tweets))
}

func (s *server) handleKeywordAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	tweets, err := s.store.GetAllTweets(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, sentiment.ExtractKeywords(tweets))
}

func (s *server) handleSentimentHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	heatmap, err := s.store.SentimentHeatmap(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, heatmap)
}

// handleIngestTweets is the async ingestion path: batches are published to
// the raw topic keyed by brand and classified later by the consumer binary.
func (s *server) handleIngestTweets(w http.ResponseWriter, r *http.Request) {
	var requests []models.TweetIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&requests); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	byBrand := map[string][]models.TweetIngestRequest{}
	for _, request := range requests {
		if strings.TrimSpace(request.Text) == "" {
			continue
		}
		brand := request.Brand
		if brand == "" {
			brand = models.DefaultBrand
		}
		byBrand[brand] = append(byBrand[brand], request)
	}
	if len(byBrand) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no tweets provided"})
		return
	}

	queued := 0
	for brand, batch := range byBrand {
		if err := kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_RAW_TWEETS, brand, batch); err != nil {
			slog.Error("[API] Failed to publish tweet batch",
				slog.String("brand", brand),
				slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to queue tweets"})
			return
		}
		queued += len(batch)
	}

	writeJSON(w, http.StatusAccepted, map[string]int{"queued": queued})
}

func (s *server) handleComparativeAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	var request struct {
		Brands []string `json:"brands"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	comparison, err := s.store.CompareBrands(ctx, request.Brands)
	if err != nil {
		if errors.Is(err, db.ErrNoBrands) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no brands provided"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("[API] Failed to encode response",
			slog.String("error", err.Error()))
	}
}
