// README: Domain event publishing (Kafka in production, zerolog otherwise).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	skafka "github.com/segmentio/kafka-go"
)

const (
	TypeShipmentBooked        = "shipment.booked"
	TypeShipmentStatusChanged = "shipment.status_changed"
	TypeBookingCreated        = "booking.created"
	TypeBookingStatusChanged  = "booking.status_changed"
)

// Publisher is what services depend on. Failures are reported to the caller,
// who logs them; a failed publish never undoes the write that caused it.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// Envelope wraps every payload written to the topic.
type Envelope struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

func NewEnvelope(eventType string, payload interface{}) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Writer is the subset of kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &skafka.Writer{
		Addr:                   skafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish JSON-encodes value and writes it keyed by key, so all events for
// one shipment or booking land on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := skafka.Message{Key: []byte(key), Value: b}
	if env, ok := value.(Envelope); ok {
		msg.Headers = []skafka.Header{{Key: "type", Value: []byte(env.Type)}}
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher writes events to the log. Used when no brokers are configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	ev := p.log.Info().Str("key", key)
	if env, ok := value.(Envelope); ok {
		ev = ev.Str("event_id", env.ID).Str("event_type", env.Type)
	}
	ev.Interface("event", value).Msg("event published")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
