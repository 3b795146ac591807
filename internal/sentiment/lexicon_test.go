package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacesedan/brandpulse/internal/models"
)

func TestResultFromPolarity(t *testing.T) {
	tests := []struct {
		name      string
		polarity  float64
		wantLabel string
		wantScore float64
	}{
		{name: "positive band", polarity: 0.15, wantLabel: models.SentimentPositive, wantScore: 0.15},
		{name: "negative band", polarity: -0.2, wantLabel: models.SentimentNegative, wantScore: 0.2},
		{name: "neutral band gets fixed score", polarity: 0.05, wantLabel: models.SentimentNeutral, wantScore: 0.5},
		{name: "zero is neutral", polarity: 0, wantLabel: models.SentimentNeutral, wantScore: 0.5},
		{name: "negative inside neutral band", polarity: -0.1, wantLabel: models.SentimentNeutral, wantScore: 0.5},
		{name: "boundary is neutral", polarity: 0.1, wantLabel: models.SentimentNeutral, wantScore: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResultFromPolarity(tt.polarity)
			require.Equal(t, tt.wantLabel, got.Label)
			require.InDelta(t, tt.wantScore, got.Score, 1e-9)
			require.Equal(t, models.MethodTextBlob, got.Method)
		})
	}
}

func TestScoresEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		polarity, subjectivity := Scores(input)
		require.Zero(t, polarity)
		require.Zero(t, subjectivity)
	}
}

func TestScoresRanges(t *testing.T) {
	inputs := []string{
		"I absolutely love this, it is wonderful and amazing!",
		"This is terrible, I hate it so much.",
		"The package arrived on Tuesday.",
		"Check https://example.com for details",
		"😀😀😀",
	}

	for _, input := range inputs {
		polarity, subjectivity := Scores(input)
		require.GreaterOrEqual(t, polarity, -1.0, "polarity out of range for %q", input)
		require.LessOrEqual(t, polarity, 1.0, "polarity out of range for %q", input)
		require.GreaterOrEqual(t, subjectivity, 0.0, "subjectivity out of range for %q", input)
		require.LessOrEqual(t, subjectivity, 1.0, "subjectivity out of range for %q", input)
	}
}

func TestAnalyzeTextAlwaysYieldsValidResult(t *testing.T) {
	inputs := []string{
		"",
		"I absolutely love this, it is wonderful and amazing!",
		"This is terrible, awful, the worst thing I have ever used.",
		"neutral words only",
	}

	for _, input := range inputs {
		result := AnalyzeText(input)
		require.Contains(t,
			[]string{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral},
			result.Label)
		require.GreaterOrEqual(t, result.Score, 0.0)
		require.LessOrEqual(t, result.Score, 1.0)
		require.Equal(t, models.MethodTextBlob, result.Method)
	}
}

func TestAnalyzeTextPolarity(t *testing.T) {
	positive := AnalyzeText("I absolutely love this, it is wonderful and amazing!")
	require.Equal(t, models.SentimentPositive, positive.Label)

	negative := AnalyzeText("This is terrible, awful, the worst thing I have ever used.")
	require.Equal(t, models.SentimentNegative, negative.Label)
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "markdown link keeps text", input: "see [the docs](https://example.com/docs)", want: "see the docs"},
		{name: "bare url removed", input: "look at https://example.com now", want: "look at now"},
		{name: "markdown emphasis stripped", input: "this is **bold** text", want: "this is bold text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}
