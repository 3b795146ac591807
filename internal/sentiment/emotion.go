package sentiment

import (
	"github.com/spacesedan/brandpulse/internal/models"
)

const excerptLength = 100

// emotionRules is evaluated top to bottom; the first match wins, so rule
// order is part of the contract. Joy at (0.6, 0.8) beats Surprise.
var emotionRules = []struct {
	emotion string
	matches func(polarity, subjectivity float64) bool
}{
	{models.EmotionJoy, func(p, s float64) bool { return p > 0.5 && s > 0.5 }},
	{models.EmotionAnger, func(p, s float64) bool { return p < -0.5 && s > 0.5 }},
	{models.EmotionSadness, func(p, s float64) bool { return p < -0.3 && s < 0.5 }},
	{models.EmotionTrust, func(p, s float64) bool { return p > 0.3 && s < 0.3 }},
	{models.EmotionSurprise, func(p, s float64) bool { return s > 0.7 }},
}

func ClassifyEmotion(polarity, subjectivity float64) string {
	for _, rule := range emotionRules {
		if rule.matches(polarity, subjectivity) {
			return rule.emotion
		}
	}
	return models.EmotionNeutral
}

func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

// AnalyzeEmotions re-scores each tweet through the lexicon (polarity and
// subjectivity are not persisted) and buckets it into an emotion. Callers
// bound the input to a recent subset; cost is one lexicon pass per tweet.
func AnalyzeEmotions(tweets []models.Tweet) []models.EmotionResult {
	results := make([]models.EmotionResult, 0, len(tweets))

	for _, tweet := range tweets {
		polarity, subjectivity := Scores(tweet.Text)
		results = append(results, models.EmotionResult{
			Text:         Excerpt(tweet.Text),
			Emotion:      ClassifyEmotion(polarity, subjectivity),
			Polarity:     polarity,
			Subjectivity: subjectivity,
			Timestamp:    tweet.Timestamp,
		})
	}

	return results
}
