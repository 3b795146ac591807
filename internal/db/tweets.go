package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spacesedan/brandpulse/internal/models"
)

const TweetsCollection = "tweets"

// ErrNoBrands rejects a comparative query before anything hits the database.
var ErrNoBrands = errors.New("at least one brand is required")

// TweetStore persists labeled tweets and runs the analytics aggregations.
// Every aggregation is a full scan over the matching record set at call
// time; cost grows with the corpus, which is why EnsureIndexes puts indexes
// on brand, timestamp and sentiment_label.
type TweetStore struct {
	collection *mongo.Collection
}

func NewTweetStore(database *mongo.Database) *TweetStore {
	return &TweetStore{collection: database.Collection(TweetsCollection)}
}

func (s *TweetStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "sentiment_label", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("[TweetStore] failed to create indexes: %w", err)
	}
	return nil
}

// InsertTweet stores a single classified tweet, stamping the write time and
// defaulting the brand. The returned record carries the generated id.
func (s *TweetStore) InsertTweet(ctx context.Context, text, brand string, result models.SentimentResult) (*models.Tweet, error) {
	if brand == "" {
		brand = models.DefaultBrand
	}

	tweet := models.Tweet{
		Text:           text,
		SentimentLabel: result.Label,
		SentimentScore: result.Score,
		AnalysisMethod: result.Method,
		Timestamp:      time.Now().UTC(),
		Brand:          brand,
	}

	res, err := s.collection.InsertOne(ctx, tweet)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to insert tweet: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		tweet.ID = id
	}
	return &tweet, nil
}

// InsertTweets is the batch path used by the Kafka consumer. Records without
// a timestamp get the flush time.
func (s *TweetStore) InsertTweets(ctx context.Context, tweets []models.Tweet) error {
	if len(tweets) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(tweets))
	for _, tweet := range tweets {
		if tweet.Timestamp.IsZero() {
			tweet.Timestamp = now
		}
		if tweet.Brand == "" {
			tweet.Brand = models.DefaultBrand
		}
		docs = append(docs, tweet)
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("[TweetStore] failed to insert tweet batch: %w", err)
	}
	return nil
}

// GetTweets returns one page, newest first.
func (s *TweetStore) GetTweets(ctx context.Context, page, limit int) ([]models.Tweet, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to query tweets: %w", err)
	}
	defer cursor.Close(ctx)

	tweets := []models.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode tweets: %w", err)
	}
	return tweets, nil
}

// GetRecentTweets bounds the emotion analysis input.
func (s *TweetStore) GetRecentTweets(ctx context.Context, limit int) ([]models.Tweet, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to query recent tweets: %w", err)
	}
	defer cursor.Close(ctx)

	tweets := []models.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode recent tweets: %w", err)
	}
	return tweets, nil
}

// GetAllTweets feeds the keyword extractor; it is an unbounded scan.
func (s *TweetStore) GetAllTweets(ctx context.Context) ([]models.Tweet, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to query all tweets: %w", err)
	}
	defer cursor.Close(ctx)

	tweets := []models.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode all tweets: %w", err)
	}
	return tweets, nil
}

// SentimentStats groups the corpus by label with count and mean score.
func (s *TweetStore) SentimentStats(ctx context.Context) ([]models.SentimentStat, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$sentiment_label"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_score", Value: bson.D{{Key: "$avg", Value: "$sentiment_score"}}},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] sentiment stats aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []models.SentimentStat{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode sentiment stats: %w", err)
	}
	return stats, nil
}

// BrandStats groups by (brand, label), then regroups per brand so each brand
// carries its sentiment cells and a total count.
func (s *TweetStore) BrandStats(ctx context.Context) ([]models.BrandStat, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "brand", Value: "$brand"},
				{Key: "sentiment", Value: "$sentiment_label"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_score", Value: bson.D{{Key: "$avg", Value: "$sentiment_score"}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id.brand"},
			{Key: "sentiments", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "sentiment", Value: "$_id.sentiment"},
				{Key: "count", Value: "$count"},
				{Key: "avg_score", Value: "$avg_score"},
			}}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$count"}}},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] brand stats aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []models.BrandStat{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode brand stats: %w", err)
	}
	return stats, nil
}

// SentimentTimeline buckets by calendar date and label, ascending by date.
func (s *TweetStore) SentimentTimeline(ctx context.Context) ([]models.TimelineBucket, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "date", Value: bson.D{{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: "$timestamp"},
				}}}},
				{Key: "sentiment", Value: "$sentiment_label"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.date", Value: 1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] timeline aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	timeline := []models.TimelineBucket{}
	if err := cursor.All(ctx, &timeline); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode timeline: %w", err)
	}
	return timeline, nil
}

// SentimentHeatmap buckets by (hour-of-day, day-of-week, label). No order is
// guaranteed.
func (s *TweetStore) SentimentHeatmap(ctx context.Context) ([]models.HeatmapBucket, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "hour", Value: bson.D{{Key: "$hour", Value: "$timestamp"}}},
				{Key: "day", Value: bson.D{{Key: "$dayOfWeek", Value: "$timestamp"}}},
				{Key: "sentiment", Value: "$sentiment_label"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] heatmap aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	heatmap := []models.HeatmapBucket{}
	if err := cursor.All(ctx, &heatmap); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode heatmap: %w", err)
	}
	return heatmap, nil
}

// CompareBrands restricts the corpus to the given brands and groups by
// (brand, label). An empty brand list is a client error, not an empty query.
func (s *TweetStore) CompareBrands(ctx context.Context, brands []string) ([]models.ComparisonBucket, error) {
	if len(brands) == 0 {
		return nil, ErrNoBrands
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "brand", Value: bson.D{{Key: "$in", Value: brands}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "brand", Value: "$brand"},
				{Key: "sentiment", Value: "$sentiment_label"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_score", Value: bson.D{{Key: "$avg", Value: "$sentiment_score"}}},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("[TweetStore] comparative aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	comparison := []models.ComparisonBucket{}
	if err := cursor.All(ctx, &comparison); err != nil {
		return nil, fmt.Errorf("[TweetStore] failed to decode comparison: %w", err)
	}
	return comparison, nil
}
