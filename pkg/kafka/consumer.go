// Package kafka provides the consumer client used when the candidate stream
// arrives on a topic instead of paired files. Messages are JSON-decoded via
// the generic DecodeJSON helper.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bitextools/docalign/pkg/config"
	"github.com/segmentio/kafka-go"
)

// Consumer reads messages from a Kafka topic one at a time.
type Consumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

// NewConsumer creates a Consumer for the configured candidate topic.
func NewConsumer(cfg config.KafkaConfig) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1e3,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return &Consumer{
		reader: r,
		logger: slog.Default().With("component", "kafka-consumer", "topic", cfg.Topic),
	}
}

// Fetch returns the next message value. The message is committed before the
// value is returned; the aligner scores each candidate at most once and a
// redelivered candidate would inflate the hit count.
func (c *Consumer) Fetch(ctx context.Context) ([]byte, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching message: %w", err)
	}
	c.logger.Debug("message received",
		"partition", msg.Partition,
		"offset", msg.Offset,
		"value_size", len(msg.Value),
	)
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		return nil, fmt.Errorf("committing offset %d: %w", msg.Offset, err)
	}
	return msg.Value, nil
}

// Close closes the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// DecodeJSON is a generic helper that unmarshals a Kafka message value into T.
func DecodeJSON[T any](value []byte) (T, error) {
	var result T
	if err := json.Unmarshal(value, &result); err != nil {
		return result, fmt.Errorf("decoding kafka message: %w", err)
	}
	return result, nil
}
