package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
	"github.com/cypherlabdev/golf-edge-service/internal/service"
)

// ErrMalformedMessage marks a message that can never be processed.
// Such messages are committed so they are not redelivered.
var ErrMalformedMessage = errors.New("malformed analysis request")

// KafkaConsumer consumes snapshot batches from Kafka and analyzes them
type KafkaConsumer struct {
	reader   *kafka.Reader
	analyzer service.EdgeAnalyzer
	logger   zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "market_snapshots"
	GroupID string   // e.g., "golf-edge"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	analyzer service.EdgeAnalyzer,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		analyzer: analyzer,
		logger:   logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return nil

		default:
			// Read message
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			// Process message
			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed, unless it never can succeed
				if !errors.Is(err, ErrMalformedMessage) {
					continue
				}
			}

			// Commit message
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	// Parse message
	var req models.AnalysisRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if req.EventID == "" && len(msg.Key) > 0 {
		req.EventID = string(msg.Key)
	}

	c.logger.Debug().
		Str("event_id", req.EventID).
		Str("batch_id", req.BatchID).
		Int("offers", len(req.Offers)).
		Msg("processing snapshot batch")

	report, err := c.analyzer.Analyze(ctx, &req)
	if errors.Is(err, service.ErrInvalidRequest) {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	} else if err != nil {
		return fmt.Errorf("failed to analyze batch: %w", err)
	}

	c.logger.Info().
		Str("event_id", report.EventID).
		Str("batch_id", report.BatchID).
		Int("records", len(report.Records)).
		Msg("processed snapshot batch")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
