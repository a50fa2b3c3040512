package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/harentsoaR/doctor-registration/internal/models"
)

const EventDoctorRegistered = "doctor_registered"

// EventPublisher announces accepted registrations to other services.
type EventPublisher interface {
	PublishDoctorRegistered(ctx context.Context, event models.DoctorRegistered) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishDoctorRegistered(context.Context, models.DoctorRegistered) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

// PublishDoctorRegistered writes the event keyed by doctor id so events of
// one doctor stay ordered within a partition.
func (k *KafkaPublisher) PublishDoctorRegistered(ctx context.Context, event models.DoctorRegistered) error {
	if event.Event == "" {
		event.Event = EventDoctorRegistered
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Event, err)
	}
	if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event.DoctorID), Value: value}); err != nil {
		return fmt.Errorf("write %s event to %s: %w", event.Event, k.topic, err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	if err := k.writer.Close(); err != nil {
		log.Printf("Error closing Kafka writer: %v", err)
		return err
	}
	return nil
}
