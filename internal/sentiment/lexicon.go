package sentiment

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/brandpulse/internal/models"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

const neutralScore = 0.5

// polarity thresholds for the label bands
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

func RemoveLinks(input string) string {
	linkPattern := regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text

	urlPattern := regexp.MustCompile(`https?://\S+|www\.\S+`)
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// NormalizeText flattens markdown to plain text and drops links so URL
// fragments never reach the lexicon.
func NormalizeText(input string) string {
	input = RemoveLinks(input)

	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := htmlTagPattern.ReplaceAllString(string(output), " ")

	return strings.Join(strings.Fields(plainText), " ")
}

// Scores computes lexicon polarity in [-1,1] and subjectivity in [0,1] for a
// text. Empty or unparseable input yields (0, 0); an internal fault is
// recovered and treated the same way, so this never fails.
func Scores(text string) (polarity, subjectivity float64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("[Lexicon] Scoring failed, treating text as neutral",
				slog.Any("panic", r))
			polarity, subjectivity = 0, 0
		}
	}()

	plainText := NormalizeText(text)
	if strings.TrimSpace(plainText) == "" {
		return 0, 0
	}

	scores := analyzer.PolarityScores(plainText)

	// Compound is the polarity; the fraction of tokens that carried any
	// sentiment at all stands in for subjectivity.
	return scores.Compound, scores.Positive + scores.Negative
}

// ResultFromPolarity maps a polarity onto the canonical label bands. The
// neutral band gets a fixed 0.5 score rather than one derived from polarity.
func ResultFromPolarity(polarity float64) models.SentimentResult {
	switch {
	case polarity > positiveThreshold:
		return models.SentimentResult{
			Label:  models.SentimentPositive,
			Score:  math.Abs(polarity),
			Method: models.MethodTextBlob,
		}
	case polarity < negativeThreshold:
		return models.SentimentResult{
			Label:  models.SentimentNegative,
			Score:  math.Abs(polarity),
			Method: models.MethodTextBlob,
		}
	default:
		return models.SentimentResult{
			Label:  models.SentimentNeutral,
			Score:  neutralScore,
			Method: models.MethodTextBlob,
		}
	}
}

func AnalyzeText(text string) models.SentimentResult {
	polarity, _ := Scores(text)
	return ResultFromPolarity(polarity)
}

// LexiconProvider is the always-available end of the provider chain.
type LexiconProvider struct{}

func (LexiconProvider) Classify(_ context.Context, text string) (models.SentimentResult, bool) {
	return AnalyzeText(text), true
}
