package kafka_client

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var producer *kafka.Producer

func InitProducer(cfg KafkaConfig) error {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	producer = p
	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return nil
}

func CloseProducer() {
	if producer != nil {
		slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
		if remaining := producer.Flush(5000); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		producer.Close()
		slog.Info("[KafkaClient] Kafka producer shut down")
	}
}

// PublishToKafka serializes the payload as JSON and produces it, keyed when a
// key is given so tweets for one brand stay on one partition.
func PublishToKafka(topic string, key string, payload interface{}) error {
	if producer == nil {
		return fmt.Errorf("[KafkaClient] producer has not been initialized")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal payload: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          jsonData,
	}
	if key != "" {
		msg.Key = []byte(key)
	}

	for i := 0; i < 3; i++ {
		err = producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1))
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	return nil
}
