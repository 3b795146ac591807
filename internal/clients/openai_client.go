package clients

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIRequestTimeout = 30 * time.Second

type OpenAIClient struct {
	Client *openai.Client
}

func NewOpenAIClient() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
	)

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{Client: client}, nil
}
