package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spacesedan/brandpulse/internal/models"
)

const HF_SENTIMENT_ENDPOINT = "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"

// HuggingFaceClient calls the hosted binary sentiment classifier. Every
// failure mode, missing credential included, is reported as a miss rather
// than an error so the resolver can route around it; the service is expected
// to be flaky and there is no retry.
type HuggingFaceClient struct {
	Client   *http.Client
	endpoint string
	apiKey   string
}

func NewHuggingFaceClient() *HuggingFaceClient {
	endpoint := os.Getenv("HUGGINGFACE_ENDPOINT")
	if endpoint == "" {
		endpoint = HF_SENTIMENT_ENDPOINT
	}

	apiKey := os.Getenv("HUGGINGFACE_API_KEY")
	if apiKey == "" {
		slog.Warn("[HuggingFaceClient] HUGGINGFACE_API_KEY not set, remote classification disabled")
	}

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.Duration("timeout", HF_REQUEST_TIMEOUT))

	return &HuggingFaceClient{
		Client:   &http.Client{Timeout: HF_REQUEST_TIMEOUT},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Classify sends the text for remote classification and returns the highest
// scoring candidate, collapsing any non-POSITIVE label to NEGATIVE (the
// remote model only emits those two).
func (h *HuggingFaceClient) Classify(ctx context.Context, text string) (models.SentimentResult, bool) {
	if h.apiKey == "" {
		return models.SentimentResult{}, false
	}

	body, err := json.Marshal(models.HuggingFaceRequest{Inputs: text})
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("error", err.Error()))
		return models.SentimentResult{}, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to build request",
			slog.String("error", err.Error()))
		return models.SentimentResult{}, false
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Request failed",
			slog.String("error", err.Error()))
		return models.SentimentResult{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("[HuggingFaceClient] Unexpected status",
			slog.Int("status", resp.StatusCode))
		return models.SentimentResult{}, false
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Failed to read response",
			slog.String("error", err.Error()))
		return models.SentimentResult{}, false
	}

	var candidates models.HuggingFaceResponse
	if err := json.Unmarshal(respBody, &candidates); err != nil {
		slog.Warn("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("error", err.Error()),
			getPreview(respBody))
		return models.SentimentResult{}, false
	}

	if len(candidates) == 0 || len(candidates[0]) == 0 {
		slog.Warn("[HuggingFaceClient] Empty candidate list in response")
		return models.SentimentResult{}, false
	}

	best := candidates[0][0]
	for _, candidate := range candidates[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	label := models.SentimentNegative
	if best.Label == models.SentimentPositive {
		label = models.SentimentPositive
	}

	return models.SentimentResult{
		Label:  label,
		Score:  best.Score,
		Method: models.MethodHuggingFace,
	}, true
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
