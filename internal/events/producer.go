package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	TypeVideoRegistered = "video.registered"
	TypeCreatorCreated  = "model.created"
)

// Event is a catalog change published after a successful registration.
type Event struct {
	Type       string     `json:"type"`
	ID         uuid.UUID  `json:"id"`
	Slug       string     `json:"slug"`
	CreatorID  *uuid.UUID `json:"modelId,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type Producer struct {
	writer *kafkago.Writer
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: brokers list is empty")
	}
	if topic == "" {
		return nil, errors.New("kafka: topic is empty")
	}

	return &Producer{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
		},
	}, nil
}

// message keys events by entity id so updates to one entity stay on one partition.
func message(event Event) (kafkago.Message, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("kafka encode: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID.String()),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}

func (p *Producer) Publish(ctx context.Context, event Event) error {
	msg, err := message(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
