package clients

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	VALKEY_PROCESSED_TWEETS_KEY = "tweets:processed"
	processedTTLSeconds         = 86400
	valkeyRetries               = 3
)

// ValkeyClient tracks already-ingested tweet texts so the Kafka consumer can
// skip duplicates inside the TTL window.
type ValkeyClient struct {
	Client valkey.Client
}

func NewValkeyClient() (*ValkeyClient, error) {
	valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
	valkeyPassword := os.Getenv("VALKEY_PASSWORD")
	useTLS := os.Getenv("VALKEY_TLS") == "true"

	opts := valkey.ClientOption{
		InitAddress:      []string{valkeyAddr},
		Password:         valkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", res.Error())
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() {
	vc.Client.Close()
}

// TweetHash is the dedupe key for a text.
func TweetHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (vc *ValkeyClient) MarkProcessed(ctx context.Context, hash string) error {
	completed := []valkey.Completed{
		vc.Client.B().Sadd().Key(VALKEY_PROCESSED_TWEETS_KEY).Member(hash).Build(),
		vc.Client.B().Expire().Key(VALKEY_PROCESSED_TWEETS_KEY).Seconds(processedTTLSeconds).Build(),
	}

	for _, res := range vc.doMultiWithRetry(ctx, completed) {
		if err := res.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (vc *ValkeyClient) IsProcessed(ctx context.Context, hash string) bool {
	res := vc.doWithRetry(ctx, vc.Client.B().Sismember().Key(VALKEY_PROCESSED_TWEETS_KEY).Member(hash).Build())

	ok, err := res.AsBool()
	if err != nil {
		return false
	}
	return ok
}

func (vc *ValkeyClient) doWithRetry(ctx context.Context, completed valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < valkeyRetries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}
	return result
}

func (vc *ValkeyClient) doMultiWithRetry(ctx context.Context, completed []valkey.Completed) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult
	for i := 0; i < valkeyRetries; i++ {
		results = vc.Client.DoMulti(ctx, completed...)

		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] DoMulti failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}
	return results
}
