package sentiment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spacesedan/brandpulse/internal/models"
)

var wordPattern = regexp.MustCompile(`\w+`)

const (
	minKeywordLength = 4
	topKeywordCount  = 10
)

// wordCounter preserves first-encountered order so that equal counts rank
// stably.
type wordCounter struct {
	counts map[string]int
	order  []string
}

func newWordCounter() *wordCounter {
	return &wordCounter{counts: make(map[string]int)}
}

func (wc *wordCounter) add(token string) {
	if _, seen := wc.counts[token]; !seen {
		wc.order = append(wc.order, token)
	}
	wc.counts[token]++
}

func (wc *wordCounter) top(n int) []models.KeywordCount {
	ranked := make([]models.KeywordCount, 0, len(wc.order))
	for _, token := range wc.order {
		ranked = append(ranked, models.KeywordCount{Token: token, Count: wc.counts[token]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ExtractKeywords scans the whole corpus, splitting each text into lowercase
// word tokens and counting tokens longer than three characters into a
// positive and a negative table keyed by the record's label. Neutral records
// contribute to neither. Cost is linear in total stored text length.
func ExtractKeywords(tweets []models.Tweet) models.KeywordReport {
	positive := newWordCounter()
	negative := newWordCounter()

	for _, tweet := range tweets {
		var counter *wordCounter
		switch tweet.SentimentLabel {
		case models.SentimentPositive:
			counter = positive
		case models.SentimentNegative:
			counter = negative
		default:
			continue
		}

		for _, token := range wordPattern.FindAllString(strings.ToLower(tweet.Text), -1) {
			if len(token) >= minKeywordLength {
				counter.add(token)
			}
		}
	}

	return models.KeywordReport{
		PositiveKeywords: positive.top(topKeywordCount),
		NegativeKeywords: negative.top(topKeywordCount),
	}
}
