package infrastructure

import (
	"fmt"

	"logia/events"
)

// EventSubjectMapper handles mapping between lodge events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBrothersImported:
		return "lodge.brothers.imported"
	case events.EventTypeMeetingScheduled:
		return "lodge.meetings.scheduled"
	case events.EventTypeMeetingUpdated:
		return "lodge.meetings.updated"
	case events.EventTypeAttendanceRecorded:
		return "lodge.attendance.recorded"
	case events.EventTypePositionAssigned:
		return "lodge.positions.assigned"
	default:
		return fmt.Sprintf("lodge.unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "lodge.brothers.imported":
		return events.EventTypeBrothersImported
	case "lodge.meetings.scheduled":
		return events.EventTypeMeetingScheduled
	case "lodge.meetings.updated":
		return events.EventTypeMeetingUpdated
	case "lodge.attendance.recorded":
		return events.EventTypeAttendanceRecorded
	case "lodge.positions.assigned":
		return events.EventTypePositionAssigned
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that the service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"lodge.brothers.imported",
		"lodge.meetings.scheduled",
		"lodge.meetings.updated",
		"lodge.attendance.recorded",
		"lodge.positions.assigned",
	}
}
