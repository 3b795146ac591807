package sentiment

import (
	"context"
	"log/slog"

	"github.com/spacesedan/brandpulse/internal/models"
)

// Provider classifies a text, or reports that it has nothing to say about it.
// Returning ok=false is the normal miss signal (service down, bad response,
// missing credential) and routes the resolver to the next provider; providers
// never surface errors.
type Provider interface {
	Classify(ctx context.Context, text string) (models.SentimentResult, bool)
}

// Resolver tries an ordered provider chain and returns the first result. The
// lexicon scorer always yields, so a chain ending with it cannot come up
// empty; a misconfigured chain still degrades to the lexicon rather than
// failing.
type Resolver struct {
	providers []Provider
}

func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

func (r *Resolver) Resolve(ctx context.Context, text string) models.SentimentResult {
	for _, provider := range r.providers {
		if result, ok := provider.Classify(ctx, text); ok {
			return result
		}
	}

	slog.Warn("[Resolver] No provider yielded a result, falling back to lexicon")
	return AnalyzeText(text)
}
