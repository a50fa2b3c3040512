package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/harentsoaR/doctor-registration/internal/models"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublishDoctorRegistered(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "doctor_events"}

	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	err := p.PublishDoctorRegistered(context.Background(), models.DoctorRegistered{
		RequestID:    "req-1",
		DoctorID:     "DOC001",
		Status:       201,
		RegisteredAt: at,
	})
	if err != nil {
		t.Fatalf("PublishDoctorRegistered: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("wrote %d messages", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "DOC001" {
		t.Errorf("Key = %q", w.msgs[0].Key)
	}

	var got models.DoctorRegistered
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Event != EventDoctorRegistered || got.RequestID != "req-1" || !got.RegisteredAt.Equal(at) {
		t.Errorf("event = %+v", got)
	}
}

func TestPublishDoctorRegisteredWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}, topic: "doctor_events"}

	err := p.PublishDoctorRegistered(context.Background(), models.DoctorRegistered{DoctorID: "DOC001"})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped broker error", err)
	}
}
