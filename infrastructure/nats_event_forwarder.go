package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"logia/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SourceService identifies this service in forwarded event envelopes
const SourceService = "logia"

// EventEnvelope wraps a forwarded event with its metadata
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventForwarder republishes committed in-process events to NATS
type NATSEventForwarder struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	now           func() time.Time
}

// NewNATSEventForwarder creates a new forwarder
func NewNATSEventForwarder(publisher MessagePublisher, subjectMapper *EventSubjectMapper) *NATSEventForwarder {
	return &NATSEventForwarder{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		now:           time.Now,
	}
}

// Attach subscribes the forwarder to every event type on the bus
func (f *NATSEventForwarder) Attach(bus *events.Bus) {
	for _, eventType := range events.AllEventTypes {
		bus.Subscribe(eventType, f.handle)
	}
	log.WithField("eventTypes", len(events.AllEventTypes)).Info("NATS event forwarder attached to event bus")
}

func (f *NATSEventForwarder) handle(ctx context.Context, event events.Event) {
	if err := f.Publish(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to forward event to NATS")
	}
}

// Publish wraps an event in an envelope and publishes it to its subject
func (f *NATSEventForwarder) Publish(ctx context.Context, event events.Event) error {
	subject := f.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     f.now().UTC(),
		SourceService: SourceService,
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := f.publisher.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Forwarded event to NATS")

	return nil
}

// EnsureLodgeEventStream creates the lodge_events stream covering every forwarded subject
func EnsureLodgeEventStream(client *NATSClient, subjectMapper *EventSubjectMapper) error {
	return client.EnsureStream(LodgeEventStream, subjectMapper.GetAllSubjects())
}
