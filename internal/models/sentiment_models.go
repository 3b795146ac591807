package models

import "time"

const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

const (
	MethodHuggingFace = "HuggingFace"
	MethodTextBlob    = "TextBlob"
	MethodOpenAI      = "OpenAI"
)

// SentimentResult is the canonical classification produced by the resolver,
// before storage attaches text, brand and timestamp.
type SentimentResult struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Method string  `json:"method"`
}

const (
	EmotionJoy      = "Joy"
	EmotionAnger    = "Anger"
	EmotionSadness  = "Sadness"
	EmotionTrust    = "Trust"
	EmotionSurprise = "Surprise"
	EmotionNeutral  = "Neutral"
)

// EmotionResult is computed on read from a stored tweet; never persisted.
type EmotionResult struct {
	Text         string    `json:"text"`
	Emotion      string    `json:"emotion"`
	Polarity     float64   `json:"polarity"`
	Subjectivity float64   `json:"subjectivity"`
	Timestamp    time.Time `json:"timestamp"`
}
