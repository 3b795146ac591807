package kafka_client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var consumerRegistry = make(map[string]func(context.Context, *kafka.Consumer))

func RegisterConsumer(topic string, consumerFunc func(context.Context, *kafka.Consumer)) {
	consumerRegistry[topic] = consumerFunc
}

func NewConsumer(cfg KafkaConfig) (*kafka.Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{cfg.Topic}, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("[KafkaClient] Failed to subscribe to topic: %w", err)
	}

	return c, nil
}

func StartConsumer(ctx context.Context, cfg KafkaConfig) error {
	consumerFunc, exists := consumerRegistry[cfg.Topic]
	if !exists {
		return fmt.Errorf("[ConsumerFactory] No consumer found for topic: %s", cfg.Topic)
	}

	consumer, err := NewConsumer(cfg)
	if err != nil {
		return fmt.Errorf("[ConsumerFactory] Failed to initialize Kafka consumer: %w", err)
	}
	defer consumer.Close()

	slog.Info("[ConsumerFactory] Starting consumer for topic...",
		slog.String("topic", cfg.Topic))
	consumerFunc(ctx, consumer)

	return nil
}
