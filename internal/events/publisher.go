package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publisher delivers envelopes to a broker.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Envelope) error { return nil }
func (NopPublisher) Close() error                            { return nil }

// AMQPClient is the part of the RabbitMQ client the publisher needs.
type AMQPClient interface {
	Publish(ctx context.Context, messageType string, body []byte) error
	Close() error
}

// RabbitMQPublisher sends envelopes to a RabbitMQ queue, one JSON message each.
type RabbitMQPublisher struct {
	client AMQPClient
}

func NewRabbitMQPublisher(client AMQPClient) *RabbitMQPublisher {
	return &RabbitMQPublisher{client: client}
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return p.client.Publish(ctx, env.EventType, body)
}

func (p *RabbitMQPublisher) Close() error { return p.client.Close() }

// KafkaWriter is the part of the kafka producer the publisher needs.
type KafkaWriter interface {
	Publish(ctx context.Context, key, value []byte, headers ...kafka.Header) error
	Close() error
}

// KafkaPublisher sends envelopes keyed by correlation id, so every event of
// one order or wallet stays on one partition.
type KafkaPublisher struct {
	writer KafkaWriter
}

func NewKafkaPublisher(writer KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return p.writer.Publish(ctx, []byte(env.CorrelationID), body,
		kafka.Header{Key: "event_type", Value: []byte(env.EventType)})
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }
