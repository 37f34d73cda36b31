package infrastructure

import (
	"fmt"
	"strings"

	"hellbingo/events"
)

// SubjectPrefix namespaces every exported game event
const SubjectPrefix = "hellbingo"

var eventSubjects = map[events.EventType]string{
	events.EventTypeCampaignStarted:  SubjectPrefix + ".campaign.started",
	events.EventTypeNightStarted:     SubjectPrefix + ".night.started",
	events.EventTypeNumberDrawn:      SubjectPrefix + ".number.drawn",
	events.EventTypeRowCompleted:     SubjectPrefix + ".row.completed",
	events.EventTypePowerUpPurchased: SubjectPrefix + ".powerup.purchased",
	events.EventTypePowerUpUsed:      SubjectPrefix + ".powerup.used",
	events.EventTypeNightResolved:    SubjectPrefix + ".night.resolved",
	events.EventTypeCampaignEnded:    SubjectPrefix + ".campaign.ended",
}

// EventSubjectMapper handles mapping between game events and NATS subjects
type EventSubjectMapper struct {
	subjectTypes map[string]events.EventType
}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	reverse := make(map[string]events.EventType, len(eventSubjects))
	for t, s := range eventSubjects {
		reverse[s] = t
	}
	return &EventSubjectMapper{subjectTypes: reverse}
}

// MapEventToSubject converts an event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := eventSubjects[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("%s.unknown.%s", SubjectPrefix, event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	if t, ok := m.subjectTypes[subject]; ok {
		return t
	}
	return events.EventType(strings.TrimPrefix(subject, SubjectPrefix+"."))
}

// WildcardSubject matches every game event subject, known or not
func (m *EventSubjectMapper) WildcardSubject() string {
	return SubjectPrefix + ".>"
}
