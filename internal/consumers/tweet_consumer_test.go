package consumers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/brandpulse/internal/clients/kafka_client"
	"github.com/spacesedan/brandpulse/internal/models"
	"github.com/spacesedan/brandpulse/internal/sentiment"
)

type stubInserter struct {
	mu       sync.Mutex
	failures int
	batches  [][]models.Tweet
}

func (s *stubInserter) InsertTweets(_ context.Context, tweets []models.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("write unavailable")
	}
	s.batches = append(s.batches, tweets)
	return nil
}

func (s *stubInserter) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

type stubCommitter struct {
	commits []*kafka.Message
}

func (s *stubCommitter) Commit(msg *kafka.Message) error {
	s.commits = append(s.commits, msg)
	return nil
}

type stubDedupe struct {
	processed map[string]bool
}

func newStubDedupe() *stubDedupe {
	return &stubDedupe{processed: map[string]bool{}}
}

func (s *stubDedupe) IsProcessed(_ context.Context, hash string) bool {
	return s.processed[hash]
}

func (s *stubDedupe) MarkProcessed(_ context.Context, hash string) error {
	s.processed[hash] = true
	return nil
}

type stubIterator struct {
	messages []*kafka.Message
}

func (s *stubIterator) Next() (*kafka.Message, error) {
	if len(s.messages) == 0 {
		return nil, kafka_client.ErrNoMessage
	}
	msg := s.messages[0]
	s.messages = s.messages[1:]
	return msg, nil
}

func newTestConsumer(store tweetInserter, dedupe DedupeCache) *TweetConsumer {
	tc := NewTweetConsumer(store, sentiment.NewResolver(sentiment.LexiconProvider{}), dedupe)
	tc.retryDelay = 0
	return tc
}

func TestFlushFailureKeepsBatchForRetry(t *testing.T) {
	store := &stubInserter{failures: insertRetries}
	dedupe := newStubDedupe()
	committer := &stubCommitter{}
	tc := newTestConsumer(store, dedupe)

	tc.handleRequest(context.Background(), models.TweetIngestRequest{Text: "first tweet", Brand: "acme"})
	tc.handleRequest(context.Background(), models.TweetIngestRequest{Text: "second tweet", Brand: "acme"})
	msg := &kafka.Message{}
	tc.lastMsg = msg

	tc.flush(context.Background(), committer)

	// The batch stays buffered, the offset stays uncommitted and nothing is
	// deduped, so a later flush or a restart replays these records.
	require.Equal(t, 2, tc.buffer.Size())
	require.Same(t, msg, tc.lastMsg)
	require.Empty(t, committer.commits)
	require.Empty(t, dedupe.processed)

	tc.flush(context.Background(), committer)

	require.Zero(t, tc.buffer.Size())
	require.Len(t, store.batches, 1)
	require.Len(t, store.batches[0], 2)
	require.Len(t, committer.commits, 1)
	require.Nil(t, tc.lastMsg)
	require.Len(t, dedupe.processed, 2)
}

func TestDedupeMarksOnlyAfterSuccessfulFlush(t *testing.T) {
	store := &stubInserter{}
	dedupe := newStubDedupe()
	tc := newTestConsumer(store, dedupe)

	tc.handleRequest(context.Background(), models.TweetIngestRequest{Text: "only once please"})
	require.Empty(t, dedupe.processed, "buffered but unflushed texts must not be marked")

	tc.flush(context.Background(), &stubCommitter{})
	require.Len(t, dedupe.processed, 1)

	// A replay of the same text is now skipped.
	tc.handleRequest(context.Background(), models.TweetIngestRequest{Text: "only once please"})
	require.Zero(t, tc.buffer.Size())
}

func TestRunFlushesPartialBatchOnIdleTopic(t *testing.T) {
	store := &stubInserter{}
	tc := newTestConsumer(store, nil)
	tc.flushInterval = 10 * time.Millisecond

	payload := []byte(`[{"text":"quiet topic still flushes","brand":"acme"}]`)
	iterator := &stubIterator{messages: []*kafka.Message{{Value: payload}}}
	committer := &stubCommitter{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		tc.run(ctx, iterator, committer)
	}()

	// One small message, then only idle polls: the ticker alone must flush.
	require.Eventually(t, func() bool {
		return store.batchCount() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	require.Len(t, store.batches[0], 1)
	require.Equal(t, "quiet topic still flushes", store.batches[0][0].Text)
	require.Len(t, committer.commits, 1)
}
