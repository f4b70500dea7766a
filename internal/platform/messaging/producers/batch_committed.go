package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/boostdesk-reconciliation/internal/config"
)

// BatchEventProducer publishes BatchCommittedEvent messages for the
// notification subsystem. Publication is best-effort: a failed write is
// logged by the caller and never rolls back the committed batch.
type BatchEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewBatchEventProducer creates the producer and ensures the topic exists
func NewBatchEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*BatchEventProducer, error) {
	if cfg.BatchEventsTopic == "" {
		return nil, fmt.Errorf("kafka batch events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for batch event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.BatchEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure batch events topic %s exists: %w", cfg.BatchEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.BatchEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &BatchEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.BatchEventsTopic,
	}, nil
}

// Publish sends one event keyed by partner, so a partner's batch
// notifications stay ordered on one partition.
func (p *BatchEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal batch event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish batch event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish batch event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published batch event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *BatchEventProducer) Close() error {
	p.logger.Info("Closing batch event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
