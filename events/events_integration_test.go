package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan AttendanceRecordedEvent, 1)
	mainBus.Subscribe(EventTypeAttendanceRecorded, func(ctx context.Context, event Event) {
		if recorded, ok := event.(AttendanceRecordedEvent); ok {
			eventReceived <- recorded
		} else {
			t.Errorf("Expected AttendanceRecordedEvent, got %T", event)
		}
	})

	testEvent := AttendanceRecordedEvent{
		AttendanceID: 10,
		BrotherID:    3,
		MeetingID:    7,
	}

	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	err := transactionalBus.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering events of several types in one flush
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	var mu sync.Mutex
	var wg sync.WaitGroup
	received := make(map[EventType]int)

	for _, eventType := range AllEventTypes {
		mainBus.Subscribe(eventType, func(ctx context.Context, event Event) {
			defer wg.Done()
			mu.Lock()
			received[event.Type()]++
			mu.Unlock()
		})
	}

	brotherID := int64(4)
	published := []Event{
		BrothersImportedEvent{Count: 2, BrotherIDs: []int64{1, 2}},
		MeetingScheduledEvent{MeetingID: 1, Theme: "Instrucción"},
		MeetingUpdatedEvent{MeetingID: 1, Theme: "Instrucción del grado"},
		AttendanceRecordedEvent{AttendanceID: 1, BrotherID: 1, MeetingID: 1},
		PositionAssignedEvent{PositionID: 5, PositionName: "Secretario", BrotherID: &brotherID},
	}
	wg.Add(len(published))
	for _, ev := range published {
		transactionalBus.Publish(ev)
	}

	require.NoError(t, transactionalBus.Flush(context.Background()))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Events were not received within timeout")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, eventType := range AllEventTypes {
		assert.Equal(t, 1, received[eventType], "event type %s", eventType)
	}
}

// TestDiscardDropsPendingEvents tests that rolled back events never reach subscribers
func TestDiscardDropsPendingEvents(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	called := make(chan struct{}, 1)
	mainBus.Subscribe(EventTypeMeetingScheduled, func(ctx context.Context, event Event) {
		called <- struct{}{}
	})

	transactionalBus.Publish(MeetingScheduledEvent{MeetingID: 1})
	transactionalBus.Discard()
	require.NoError(t, transactionalBus.Flush(context.Background()))

	select {
	case <-called:
		t.Fatal("Discarded event was delivered")
	case <-time.After(200 * time.Millisecond):
	}
}

// TestHandlerPanicIsRecovered tests that a panicking handler does not stop other handlers
func TestHandlerPanicIsRecovered(t *testing.T) {
	bus := NewBus()

	called := make(chan struct{}, 1)
	bus.Subscribe(EventTypePositionAssigned, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypePositionAssigned, func(ctx context.Context, event Event) {
		called <- struct{}{}
	})

	bus.Emit(context.Background(), PositionAssignedEvent{PositionID: 1})

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("Second handler was not called")
	}
}
