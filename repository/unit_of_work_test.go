package repository

import (
	"context"
	"testing"
	"time"

	"logia/events"
	"logia/models"
	"logia/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitFlushesEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeMeetingScheduled, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	meeting := testutil.CreateTestMeeting("Tenida magna", models.GradeMaster, time.Now())
	require.NoError(t, uow.MeetingRepository().Create(ctx, meeting))
	uow.EventBus().Publish(events.MeetingScheduledEvent{MeetingID: meeting.ID})
	require.NoError(t, uow.Commit())

	select {
	case event := <-received:
		assert.Equal(t, meeting.ID, event.(events.MeetingScheduledEvent).MeetingID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not flushed after commit")
	}

	stored, err := NewMeetingRepository(testDB.DB).GetByID(ctx, meeting.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBrothersImported, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	brother := testutil.CreateTestBrother("Temporal", models.GradeApprentice)
	require.NoError(t, uow.BrotherRepository().Create(ctx, brother))
	uow.EventBus().Publish(events.BrothersImportedEvent{Count: 1})
	require.NoError(t, uow.Rollback())

	select {
	case <-received:
		t.Fatal("event delivered after rollback")
	case <-time.After(200 * time.Millisecond):
	}

	stored, err := NewBrotherRepository(testDB.DB).GetByID(ctx, brother.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestUnitOfWork_NotStarted(t *testing.T) {
	uow := (&unitOfWorkFactory{}).Create()

	assert.Panics(t, func() { uow.BrotherRepository() })
	assert.Panics(t, func() { uow.MeetingRepository() })
	assert.Panics(t, func() { uow.AttendanceRepository() })
	assert.Panics(t, func() { uow.PositionRepository() })
	assert.Panics(t, func() { uow.TempleRepository() })
	assert.Error(t, uow.Commit())
	assert.NoError(t, uow.Rollback())
}
