package sentiment

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"

	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/models"
)

const openAISentimentPrompt = `Classify the sentiment of the user's text.

### **STRICT OUTPUT FORMAT**
You MUST return only **valid JSON**, formatted exactly as follows:
{"label": "POSITIVE", "score": 0.95}

### **REQUIREMENTS**
- "label" MUST be exactly one of: POSITIVE, NEGATIVE, NEUTRAL.
- "score" MUST be a confidence value between 0 and 1.
- **No Markdown formatting** (no triple backticks, no explanations).
- **No extra text before or after the JSON output**.
`

type openAISentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// OpenAIProvider is an opt-in member of the provider chain; it slots between
// the remote classifier and the lexicon fallback and misses on any failure
// like the other providers.
type OpenAIProvider struct {
	client *clients.OpenAIClient
}

func NewOpenAIProvider(client *clients.OpenAIClient) *OpenAIProvider {
	return &OpenAIProvider{client: client}
}

func (p *OpenAIProvider) Classify(ctx context.Context, text string) (models.SentimentResult, bool) {
	chatCompletion, err := p.client.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(openAISentimentPrompt),
				openai.UserMessage(text),
			}),
			Model:       openai.F(openai.ChatModelGPT3_5Turbo),
			Temperature: openai.Float(0),
		})
	if err != nil {
		slog.Warn("[OpenAIProvider] Completion failed",
			slog.String("error", err.Error()))
		return models.SentimentResult{}, false
	}

	if len(chatCompletion.Choices) == 0 {
		slog.Warn("[OpenAIProvider] Empty completion response")
		return models.SentimentResult{}, false
	}

	raw := cleanOpenAIResponse(chatCompletion.Choices[0].Message.Content)

	var parsed openAISentiment
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Warn("[OpenAIProvider] Failed to parse completion",
			slog.String("error", err.Error()),
			slog.String("raw_response", raw))
		return models.SentimentResult{}, false
	}

	switch parsed.Label {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		slog.Warn("[OpenAIProvider] Unexpected label",
			slog.String("label", parsed.Label))
		return models.SentimentResult{}, false
	}

	if parsed.Score < 0 {
		parsed.Score = 0
	} else if parsed.Score > 1 {
		parsed.Score = 1
	}

	return models.SentimentResult{
		Label:  parsed.Label,
		Score:  parsed.Score,
		Method: models.MethodOpenAI,
	}, true
}

func cleanOpenAIResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	return strings.TrimSpace(response)
}
