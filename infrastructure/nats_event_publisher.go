package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hellbingo/events"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// PublishRecorder is notified of every event that reached the message bus
type PublishRecorder interface {
	RecordNATSMessagePublished(eventType string)
}

// BusSubscriber is a bus that can deliver every event type to one handler
type BusSubscriber interface {
	SubscribeAll(handler events.Handler)
}

// NATSEventPublisher exports game events to NATS as protojson envelopes
type NATSEventPublisher struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	recorder      PublishRecorder
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher. recorder may be nil.
func NewNATSEventPublisher(publisher MessagePublisher, subjectMapper *EventSubjectMapper, recorder PublishRecorder) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		recorder:      recorder,
		now:           time.Now,
	}
}

// Register exports every event emitted on bus
func (p *NATSEventPublisher) Register(bus BusSubscriber) {
	bus.SubscribeAll(p.Handle)
}

// Handle is an events.Handler that publishes and logs failures
func (p *NATSEventPublisher) Handle(ctx context.Context, event events.Event) {
	if err := p.Publish(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to export event")
	}
}

// Publish wraps event in an envelope and publishes it on its subject
func (p *NATSEventPublisher) Publish(ctx context.Context, event events.Event) error {
	subject := p.subjectMapper.MapEventToSubject(event)

	envelope, err := NewEnvelope(event, p.now())
	if err != nil {
		return err
	}
	data, err := envelope.Marshal()
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(ctx, subject, data); err != nil {
		if errors.Is(err, nats.ErrNoStreamResponse) {
			log.WithField("subject", subject).Warn("No stream bound to subject, event dropped")
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	if p.recorder != nil {
		p.recorder.RecordNATSMessagePublished(string(event.Type()))
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")
	return nil
}

// EnsureEventStream creates the stream capturing every game event subject
func (p *NATSEventPublisher) EnsureEventStream(client *NATSClient) error {
	return client.EnsureStream(EventStreamName, []string{p.subjectMapper.WildcardSubject()})
}
