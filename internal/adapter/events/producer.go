package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// Publisher emits registration lifecycle events for the notification
// subsystem. Delivery to the end user happens downstream.
type Publisher interface {
	PublishRegistrationResult(ctx context.Context, orderID string, result model.RegistrationResult) error
}

// registrationEvent is the wire format published to Kafka.
type registrationEvent struct {
	EventID    string `json:"event_id"`
	OrderID    string `json:"order_id"`
	DomainName string `json:"domain_name"`
	Success    bool   `json:"success"`
	Reason     string `json:"reason,omitempty"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Producer publishes events through a synchronous Kafka producer.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewProducer creates a Kafka producer with acknowledgment from all replicas.
func NewProducer(brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &Producer{producer: producer, topic: topic, logger: logger}, nil
}

// NewProducerWith wraps an existing sarama producer; used in tests.
func NewProducerWith(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Producer {
	return &Producer{producer: producer, topic: topic, logger: logger}
}

// PublishRegistrationResult emits one event keyed by order ID so per-order
// ordering is preserved.
func (p *Producer) PublishRegistrationResult(_ context.Context, orderID string, result model.RegistrationResult) error {
	event := registrationEvent{
		EventID:    uuid.NewString(),
		OrderID:    orderID,
		DomainName: result.DomainName,
		Success:    result.Success,
		Reason:     string(result.Reason),
		Detail:     result.Detail,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(orderID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish registration event: %w", err)
	}

	p.logger.Info("registration event published",
		slog.String("order_id", orderID),
		slog.Int64("offset", offset),
		slog.Int("partition", int(partition)),
	)
	return nil
}

// Close flushes and shuts down the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}

// NopPublisher discards events; used when no Kafka brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishRegistrationResult(context.Context, string, model.RegistrationResult) error {
	return nil
}
