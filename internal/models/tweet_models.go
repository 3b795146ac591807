package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultBrand = "default"

// Tweet is the persisted, labeled record. Immutable once inserted; analytics
// only ever read it.
type Tweet struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Text           string             `bson:"text" json:"text"`
	SentimentLabel string             `bson:"sentiment_label" json:"sentiment_label"`
	SentimentScore float64            `bson:"sentiment_score" json:"sentiment_score"`
	AnalysisMethod string             `bson:"analysis_method" json:"analysis_method"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
	Brand          string             `bson:"brand" json:"brand"`
}

// TweetIngestRequest is the wire shape for new tweets, both on the HTTP
// surface and inside Kafka ingest batches.
type TweetIngestRequest struct {
	Text  string `json:"text"`
	Brand string `json:"brand,omitempty"`
}
