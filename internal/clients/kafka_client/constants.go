package kafka_client

import "time"

const (
	KAFKA_TOPIC_RAW_TWEETS = "tweets-raw" // incoming tweet batches awaiting classification
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)
