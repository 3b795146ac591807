package sentiment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacesedan/brandpulse/internal/models"
)

func TestClassifyEmotion(t *testing.T) {
	tests := []struct {
		name         string
		polarity     float64
		subjectivity float64
		want         string
	}{
		{name: "joy", polarity: 0.6, subjectivity: 0.6, want: models.EmotionJoy},
		{name: "anger", polarity: -0.6, subjectivity: 0.6, want: models.EmotionAnger},
		{name: "sadness", polarity: -0.4, subjectivity: 0.2, want: models.EmotionSadness},
		{name: "trust", polarity: 0.4, subjectivity: 0.2, want: models.EmotionTrust},
		{name: "surprise", polarity: 0.0, subjectivity: 0.8, want: models.EmotionSurprise},
		{name: "neutral", polarity: 0.0, subjectivity: 0.2, want: models.EmotionNeutral},
		// rule order matters: this matches Joy before Surprise would fire
		{name: "joy beats surprise", polarity: 0.6, subjectivity: 0.8, want: models.EmotionJoy},
		{name: "anger beats surprise", polarity: -0.6, subjectivity: 0.8, want: models.EmotionAnger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyEmotion(tt.polarity, tt.subjectivity))
		})
	}
}

func TestExcerpt(t *testing.T) {
	short := Excerpt("short text")
	require.Equal(t, "short text...", short)

	long := strings.Repeat("a", 250)
	got := Excerpt(long)
	require.Equal(t, strings.Repeat("a", 100)+"...", got)
}

func TestAnalyzeEmotions(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tweets := []models.Tweet{
		{Text: "I absolutely love this, it is wonderful and amazing!", Timestamp: ts},
		{Text: "", Timestamp: ts},
	}

	results := AnalyzeEmotions(tweets)
	require.Len(t, results, 2)

	for _, result := range results {
		require.Contains(t, []string{
			models.EmotionJoy, models.EmotionAnger, models.EmotionSadness,
			models.EmotionTrust, models.EmotionSurprise, models.EmotionNeutral,
		}, result.Emotion)
		require.Equal(t, ts, result.Timestamp)
		require.True(t, strings.HasSuffix(result.Text, "..."))
	}

	// empty text scores (0,0) and lands in the neutral bucket
	require.Equal(t, models.EmotionNeutral, results[1].Emotion)
	require.Zero(t, results[1].Polarity)
	require.Zero(t, results[1].Subjectivity)
}
