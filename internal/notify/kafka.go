package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/investbuddy/circles-api/internal/config"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// GoalEventsProducer mirrors goal events onto a Kafka topic for downstream
// consumers (analytics, history). It is an optional secondary sink; the
// local socket listener stays the primary one.
type GoalEventsProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewGoalEventsProducer creates the mirror producer and ensures the topic exists
func NewGoalEventsProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*GoalEventsProducer, error) {
	if cfg.GoalEventsTopic == "" {
		return nil, fmt.Errorf("kafka goal events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for goal events producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.GoalEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure goal events topic %s exists: %w", cfg.GoalEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.GoalEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Mirror publishing must never block event emission
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write goal events asynchronously", "topic", cfg.GoalEventsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote goal events asynchronously", "topic", cfg.GoalEventsTopic, "count", len(messages))
			}
		},
	}

	return &GoalEventsProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.GoalEventsTopic,
	}, nil
}

func (p *GoalEventsProducer) Publish(ctx context.Context, key string, event interface{}) error {
	jsonValue, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal goal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish goal event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish goal event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published goal event", "topic", p.topic, "key", key)
	return nil
}

func (p *GoalEventsProducer) Close() error {
	p.logger.Info("Closing goal events producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close goal events kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

// createKafkaTopicIfNotExists creates the topic if not found, retrying on
// partition read errors
func createKafkaTopicIfNotExists(conn *kafka.Conn, topicName string, numPartitions int, replicationFactor int, log *slog.Logger) error {
	var partitions []kafka.Partition
	var err error

	log.Info("Checking if Kafka topic exists", "topic", topicName)
	for i := 0; i < 5; i++ {
		partitions, err = conn.ReadPartitions(topicName)
		if err == nil {
			break
		}
		log.Warn("Failed to read partitions, retrying...", "topic", topicName, "attempt", i+1, "error", err)
		time.Sleep(2 * time.Second)
	}

	if len(partitions) > 0 {
		log.Info("Kafka topic already exists", "topic", topicName)
		return nil
	}

	log.Info("Kafka topic does not exist or is not accessible, attempting to create it", "topic", topicName)
	topicConfig := kafka.TopicConfig{
		Topic:             topicName,
		NumPartitions:     numPartitions,
		ReplicationFactor: replicationFactor,
	}
	if topicConfig.NumPartitions == 0 {
		topicConfig.NumPartitions = 1
	}
	if topicConfig.ReplicationFactor == 0 {
		topicConfig.ReplicationFactor = 1
	}

	if creationErr := conn.CreateTopics(topicConfig); creationErr != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topicName, creationErr)
	}

	log.Info("Successfully created Kafka topic", "topic", topicName)
	return nil
}
