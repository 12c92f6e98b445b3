package events

import (
	"context"
	"sync"
	"time"

	"logia/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBrothersImported   EventType = "brothers_imported"
	EventTypeMeetingScheduled   EventType = "meeting_scheduled"
	EventTypeMeetingUpdated     EventType = "meeting_updated"
	EventTypeAttendanceRecorded EventType = "attendance_recorded"
	EventTypePositionAssigned   EventType = "position_assigned"
)

// AllEventTypes lists every event type the services publish
var AllEventTypes = []EventType{
	EventTypeBrothersImported,
	EventTypeMeetingScheduled,
	EventTypeMeetingUpdated,
	EventTypeAttendanceRecorded,
	EventTypePositionAssigned,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BrothersImportedEvent is published after a spreadsheet import commits
type BrothersImportedEvent struct {
	Count      int     `json:"count"`
	BrotherIDs []int64 `json:"brother_ids"`
}

func (e BrothersImportedEvent) Type() EventType {
	return EventTypeBrothersImported
}

// MeetingScheduledEvent represents a newly created meeting
type MeetingScheduledEvent struct {
	MeetingID int64              `json:"meeting_id"`
	Theme     string             `json:"theme"`
	Date      time.Time          `json:"date"`
	Grade     models.Grade       `json:"grade"`
	Kind      models.MeetingType `json:"kind"`
}

func (e MeetingScheduledEvent) Type() EventType {
	return EventTypeMeetingScheduled
}

// MeetingUpdatedEvent represents an edit of an existing meeting
type MeetingUpdatedEvent struct {
	MeetingID int64        `json:"meeting_id"`
	Theme     string       `json:"theme"`
	Date      time.Time    `json:"date"`
	Grade     models.Grade `json:"grade"`
}

func (e MeetingUpdatedEvent) Type() EventType {
	return EventTypeMeetingUpdated
}

// AttendanceRecordedEvent is published only when a new attendance row was inserted
type AttendanceRecordedEvent struct {
	AttendanceID int64 `json:"attendance_id"`
	BrotherID    int64 `json:"brother_id"`
	MeetingID    int64 `json:"meeting_id"`
}

func (e AttendanceRecordedEvent) Type() EventType {
	return EventTypeAttendanceRecorded
}

// PositionAssignedEvent represents a change of holder for a lodge office.
// A nil BrotherID means the office was left vacant.
type PositionAssignedEvent struct {
	PositionID        int64  `json:"position_id"`
	PositionName      string `json:"position_name"`
	BrotherID         *int64 `json:"brother_id,omitempty"`
	PreviousBrotherID *int64 `json:"previous_brother_id,omitempty"`
}

func (e PositionAssignedEvent) Type() EventType {
	return EventTypePositionAssigned
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	// Handlers run asynchronously
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events published inside a unit of work until it commits
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush emits the pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events from transactional bus to main event bus")

	// The transaction context may already be cancelled once the request finishes
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops the pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
