package sentiment

import (
	"log/slog"
	"os"

	"github.com/spacesedan/brandpulse/internal/clients"
)

// DefaultProviders assembles the classification chain used by every binary:
// remote classifier first, optional LLM second, lexicon last so the chain
// always yields. Both the API server and the ingest worker build their
// resolver from this, so the same config classifies the same way everywhere.
func DefaultProviders() []Provider {
	providers := []Provider{clients.NewHuggingFaceClient()}

	if os.Getenv("SENTIMENT_USE_OPENAI") == "true" {
		openAIClient, err := clients.NewOpenAIClient()
		if err != nil {
			slog.Warn("[Sentiment] OpenAI provider disabled",
				slog.String("error", err.Error()))
		} else {
			providers = append(providers, NewOpenAIProvider(openAIClient))
		}
	}

	return append(providers, LexiconProvider{})
}
