package consumers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/brandpulse/internal/clients"
	"github.com/spacesedan/brandpulse/internal/clients/kafka_client"
	"github.com/spacesedan/brandpulse/internal/models"
	"github.com/spacesedan/brandpulse/internal/sentiment"
	"github.com/spacesedan/brandpulse/internal/utils"
)

const insertRetries = 3

// DedupeCache remembers which texts were already persisted. Marking happens
// only after a successful flush so an unflushed text is never deduped away on
// replay.
type DedupeCache interface {
	IsProcessed(ctx context.Context, hash string) bool
	MarkProcessed(ctx context.Context, hash string) error
}

type tweetInserter interface {
	InsertTweets(ctx context.Context, tweets []models.Tweet) error
}

type messageSource interface {
	Next() (*kafka.Message, error)
}

type offsetCommitter interface {
	Commit(msg *kafka.Message) error
}

// TweetConsumer drains the raw tweet topic: each text is deduped against
// Valkey, classified through the resolver, buffered, and flushed to Mongo in
// batches. Offsets commit and dedupe marks apply only after a successful
// flush, so a crash or a failed insert replays at-least-once.
type TweetConsumer struct {
	store         tweetInserter
	resolver      *sentiment.Resolver
	dedupe        DedupeCache
	flushInterval time.Duration
	retryDelay    time.Duration

	buffer        *utils.BatchBuffer[models.Tweet]
	pendingHashes []string
	lastMsg       *kafka.Message
}

func NewTweetConsumer(store tweetInserter, resolver *sentiment.Resolver, dedupe DedupeCache) *TweetConsumer {
	return &TweetConsumer{
		store:         store,
		resolver:      resolver,
		dedupe:        dedupe,
		flushInterval: utils.BATCH_TIMEOUT,
		retryDelay:    time.Second,
		buffer:        utils.NewBatchBuffer[models.Tweet](),
	}
}

func (tc *TweetConsumer) Start(ctx context.Context, consumer *kafka.Consumer) {
	tc.run(ctx,
		kafka_client.NewKafkaMessageIterator(ctx, consumer),
		kafka_client.NewCommitHandler(ctx, consumer))
}

func (tc *TweetConsumer) run(ctx context.Context, iterator messageSource, committer offsetCommitter) {
	ticker := time.NewTicker(tc.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[TweetConsumer] Consumer shutting down, flushing buffer...")
			tc.flush(context.Background(), committer)
			return
		case <-ticker.C:
			tc.flush(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				// An idle topic must not starve the ticker flush.
				if !errors.Is(err, kafka_client.ErrNoMessage) {
					utils.HandleConsumerError(err)
				}
				continue
			}

			var requests []models.TweetIngestRequest
			if err := utils.DeserializeFromJSON(msg.Value, &requests); err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			for _, request := range requests {
				tc.handleRequest(ctx, request)
			}
			tc.lastMsg = msg

			if tc.buffer.Size() >= utils.BATCH_SIZE {
				tc.flush(ctx, committer)
			}
		}
	}
}

func (tc *TweetConsumer) handleRequest(ctx context.Context, request models.TweetIngestRequest) {
	if strings.TrimSpace(request.Text) == "" {
		slog.Warn("[TweetConsumer] Skipping tweet with empty text")
		return
	}

	hash := clients.TweetHash(request.Text)
	if tc.dedupe != nil && tc.dedupe.IsProcessed(ctx, hash) {
		slog.Debug("[TweetConsumer] Skipping duplicate tweet",
			slog.String("hash", hash))
		return
	}

	result := tc.resolver.Resolve(ctx, request.Text)
	tc.buffer.Add(models.Tweet{
		Text:           request.Text,
		SentimentLabel: result.Label,
		SentimentScore: result.Score,
		AnalysisMethod: result.Method,
		Brand:          request.Brand,
	})
	tc.pendingHashes = append(tc.pendingHashes, hash)
}

func (tc *TweetConsumer) flush(ctx context.Context, committer offsetCommitter) {
	batch := tc.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	hashes := tc.pendingHashes
	tc.pendingHashes = nil

	var insertErr error
	for i := 0; i < insertRetries; i++ {
		insertErr = tc.store.InsertTweets(ctx, batch)
		if insertErr == nil {
			break
		}
		slog.Error("[TweetConsumer] Failed to write tweets to DB",
			slog.String("error", insertErr.Error()),
			slog.Int("attempt", i+1))
		time.Sleep(tc.retryDelay)
	}
	if insertErr != nil {
		// Restore the batch so the next flush retries it; offsets stay
		// uncommitted and nothing is marked processed, so even a restart
		// replays these records.
		for _, tweet := range batch {
			tc.buffer.Add(tweet)
		}
		tc.pendingHashes = hashes
		return
	}

	slog.Info("[TweetConsumer] Stored tweet batch",
		slog.Int("batch_size", len(batch)))

	if tc.dedupe != nil {
		for _, hash := range hashes {
			if err := tc.dedupe.MarkProcessed(ctx, hash); err != nil {
				slog.Warn("[TweetConsumer] Failed to mark tweet as processed",
					slog.String("error", err.Error()))
			}
		}
	}

	if tc.lastMsg != nil {
		if err := committer.Commit(tc.lastMsg); err != nil {
			slog.Warn("[TweetConsumer] Failed to commit offset",
				slog.String("error", err.Error()))
		}
		tc.lastMsg = nil
	}
}
