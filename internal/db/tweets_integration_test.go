package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/models"
)

// newIntegrationStore connects to a real MongoDB instance and hands back a
// store over a throwaway collection. Tests are skipped unless MONGODB_URI is
// set.
func newIntegrationStore(t *testing.T) *TweetStore {
	t.Helper()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	t.Cleanup(cancel)

	client, err := clients.NewMongoClient(ctx, uri)
	require.NoError(t, err)

	database := client.Database(fmt.Sprintf("brandpulse_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	return NewTweetStore(database)
}

func seedTweets(t *testing.T, store *TweetStore) {
	t.Helper()

	ts := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	tweets := []models.Tweet{
		{Text: "love it", SentimentLabel: models.SentimentPositive, SentimentScore: 0.8, AnalysisMethod: models.MethodHuggingFace, Timestamp: ts, Brand: "acme"},
		{Text: "pretty good", SentimentLabel: models.SentimentPositive, SentimentScore: 0.6, AnalysisMethod: models.MethodTextBlob, Timestamp: ts.Add(time.Hour), Brand: "acme"},
		{Text: "not great", SentimentLabel: models.SentimentNegative, SentimentScore: 0.4, AnalysisMethod: models.MethodTextBlob, Timestamp: ts.Add(24 * time.Hour), Brand: "globex"},
	}
	require.NoError(t, store.InsertTweets(context.Background(), tweets))
}

func TestSentimentStatsIntegration(t *testing.T) {
	store := newIntegrationStore(t)
	seedTweets(t, store)

	stats, err := store.SentimentStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byLabel := map[string]models.SentimentStat{}
	for _, stat := range stats {
		byLabel[stat.Label] = stat
	}

	require.Equal(t, int64(2), byLabel[models.SentimentPositive].Count)
	require.InDelta(t, 0.7, byLabel[models.SentimentPositive].AvgScore, 1e-9)
	require.Equal(t, int64(1), byLabel[models.SentimentNegative].Count)
	require.InDelta(t, 0.4, byLabel[models.SentimentNegative].AvgScore, 1e-9)
}

func TestBrandStatsIntegration(t *testing.T) {
	store := newIntegrationStore(t)
	seedTweets(t, store)

	stats, err := store.BrandStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	for _, stat := range stats {
		var sum int64
		for _, cell := range stat.Sentiments {
			sum += cell.Count
		}
		require.Equal(t, stat.Total, sum, "brand %q total must equal the sum of its cells", stat.Brand)
	}
}

func TestSentimentTimelineIntegration(t *testing.T) {
	store := newIntegrationStore(t)
	seedTweets(t, store)

	timeline, err := store.SentimentTimeline(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, timeline)

	for i := 1; i < len(timeline); i++ {
		require.LessOrEqual(t, timeline[i-1].ID.Date, timeline[i].ID.Date,
			"timeline must be sorted ascending by date")
	}
}

func TestSentimentHeatmapIntegration(t *testing.T) {
	store := newIntegrationStore(t)
	seedTweets(t, store)

	heatmap, err := store.SentimentHeatmap(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, heatmap)

	for _, bucket := range heatmap {
		require.GreaterOrEqual(t, bucket.ID.Hour, int32(0))
		require.LessOrEqual(t, bucket.ID.Hour, int32(23))
		require.GreaterOrEqual(t, bucket.ID.Day, int32(1))
		require.LessOrEqual(t, bucket.ID.Day, int32(7))
	}
}

func TestCompareBrandsIntegration(t *testing.T) {
	store := newIntegrationStore(t)
	seedTweets(t, store)

	comparison, err := store.CompareBrands(context.Background(), []string{"acme"})
	require.NoError(t, err)
	require.NotEmpty(t, comparison)

	for _, bucket := range comparison {
		require.Equal(t, "acme", bucket.ID.Brand)
	}
}

func TestInsertTweetDefaultsIntegration(t *testing.T) {
	store := newIntegrationStore(t)

	tweet, err := store.InsertTweet(context.Background(), "hello world", "", models.SentimentResult{
		Label:  models.SentimentNeutral,
		Score:  0.5,
		Method: models.MethodTextBlob,
	})
	require.NoError(t, err)
	require.False(t, tweet.ID.IsZero())
	require.Equal(t, models.DefaultBrand, tweet.Brand)
	require.False(t, tweet.Timestamp.IsZero())

	tweets, err := store.GetTweets(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	require.Equal(t, "hello world", tweets[0].Text)
}
