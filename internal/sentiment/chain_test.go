package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultProvidersEndsWithLexicon(t *testing.T) {
	t.Setenv("SENTIMENT_USE_OPENAI", "")
	t.Setenv("HUGGINGFACE_API_KEY", "")

	providers := DefaultProviders()
	require.Len(t, providers, 2)
	require.IsType(t, LexiconProvider{}, providers[len(providers)-1])
}

func TestDefaultProvidersOpenAIRequiresCredential(t *testing.T) {
	t.Setenv("SENTIMENT_USE_OPENAI", "true")
	t.Setenv("OPENAI_API_KEY", "")

	// Opting in without a credential degrades to the default chain instead
	// of failing startup.
	providers := DefaultProviders()
	require.Len(t, providers, 2)
	require.IsType(t, LexiconProvider{}, providers[len(providers)-1])
}

func TestDefaultProvidersIncludesOpenAIWhenConfigured(t *testing.T) {
	t.Setenv("SENTIMENT_USE_OPENAI", "true")
	t.Setenv("OPENAI_API_KEY", "test-key")

	providers := DefaultProviders()
	require.Len(t, providers, 3)
	require.IsType(t, &OpenAIProvider{}, providers[1])
	require.IsType(t, LexiconProvider{}, providers[2])
}
