package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// DefaultTopic receives BillCommitted events when no topic is configured.
const DefaultTopic = "bill_committed"

// Publisher writes bill events to Kafka.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher builds a writer for topic, or DefaultTopic when empty.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// PublishBillCommitted sends one event keyed by transaction id.
func (p *Publisher) PublishBillCommitted(ctx context.Context, event models.BillCommitted) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write bill %d to %s: %w", event.SequenceID, p.writer.Topic, err)
	}
	p.logger.Debug("bill event published", zap.Int64("sequence_id", event.SequenceID))
	return nil
}

// Close flushes pending writes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(event models.BillCommitted) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode bill event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("BillCommitted")},
			{Key: "sequence_id", Value: []byte(strconv.FormatInt(event.SequenceID, 10))},
		},
	}, nil
}
