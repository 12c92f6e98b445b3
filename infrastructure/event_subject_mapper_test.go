package infrastructure

import (
	"testing"

	"logia/events"

	"github.com/stretchr/testify/assert"
)

func TestEventSubjectMapper_RoundTrip(t *testing.T) {
	mapper := NewEventSubjectMapper()

	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.BrothersImportedEvent{}, "lodge.brothers.imported"},
		{events.MeetingScheduledEvent{}, "lodge.meetings.scheduled"},
		{events.MeetingUpdatedEvent{}, "lodge.meetings.updated"},
		{events.AttendanceRecordedEvent{}, "lodge.attendance.recorded"},
		{events.PositionAssignedEvent{}, "lodge.positions.assigned"},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.subject, mapper.MapEventToSubject(tt.event))
			assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(tt.subject))
		})
	}
}

func TestEventSubjectMapper_CoversEveryEventType(t *testing.T) {
	mapper := NewEventSubjectMapper()

	subjects := mapper.GetAllSubjects()
	assert.Len(t, subjects, len(events.AllEventTypes))
	for _, eventType := range events.AllEventTypes {
		assert.NotEmpty(t, subjectFor(mapper, eventType), "no subject for %s", eventType)
	}
}

func subjectFor(mapper *EventSubjectMapper, eventType events.EventType) string {
	for _, subject := range mapper.GetAllSubjects() {
		if mapper.MapSubjectToEventType(subject) == eventType {
			return subject
		}
	}
	return ""
}
