package models

// SentimentStat is one bucket of the corpus-wide totals aggregation.
type SentimentStat struct {
	Label    string  `bson:"_id" json:"_id"`
	Count    int64   `bson:"count" json:"count"`
	AvgScore float64 `bson:"avg_score" json:"avg_score"`
}

type BrandSentiment struct {
	Sentiment string  `bson:"sentiment" json:"sentiment"`
	Count     int64   `bson:"count" json:"count"`
	AvgScore  float64 `bson:"avg_score" json:"avg_score"`
}

// BrandStat groups per-sentiment cells under a brand; Total is the sum of
// the cell counts.
type BrandStat struct {
	Brand      string           `bson:"_id" json:"_id"`
	Sentiments []BrandSentiment `bson:"sentiments" json:"sentiments"`
	Total      int64            `bson:"total" json:"total"`
}

type TimelineKey struct {
	Date      string `bson:"date" json:"date"`
	Sentiment string `bson:"sentiment" json:"sentiment"`
}

type TimelineBucket struct {
	ID    TimelineKey `bson:"_id" json:"_id"`
	Count int64       `bson:"count" json:"count"`
}

// HeatmapKey uses Mongo date parts: Hour 0-23, Day 1-7 with 1 = Sunday.
type HeatmapKey struct {
	Hour      int32  `bson:"hour" json:"hour"`
	Day       int32  `bson:"day" json:"day"`
	Sentiment string `bson:"sentiment" json:"sentiment"`
}

type HeatmapBucket struct {
	ID    HeatmapKey `bson:"_id" json:"_id"`
	Count int64      `bson:"count" json:"count"`
}

type ComparisonKey struct {
	Brand     string `bson:"brand" json:"brand"`
	Sentiment string `bson:"sentiment" json:"sentiment"`
}

type ComparisonBucket struct {
	ID       ComparisonKey `bson:"_id" json:"_id"`
	Count    int64         `bson:"count" json:"count"`
	AvgScore float64       `bson:"avg_score" json:"avg_score"`
}

type KeywordCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

type KeywordReport struct {
	PositiveKeywords []KeywordCount `json:"positive_keywords"`
	NegativeKeywords []KeywordCount `json:"negative_keywords"`
}
