package repository

import (
	"context"
	"testing"
	"time"

	"logia/models"
	"logia/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMeetingRepository(testDB.DB)
	ctx := context.Background()
	today := testutil.Day(time.Now())

	past := testutil.CreateTestMeeting("Instrucción del primer grado", models.GradeApprentice, today.AddDate(0, 0, -7))
	current := testutil.CreateTestMeeting("Tenida de hoy", models.GradeCompanion, today)
	next := testutil.CreateTestMeeting("Elecciones", models.GradeMaster, today.AddDate(0, 0, 7))
	later := testutil.CreateTestMeeting("Instrucción del segundo grado", models.GradeCompanion, today.AddDate(0, 0, 14))
	for _, m := range []*models.Meeting{past, current, later, next} {
		require.NoError(t, repo.Create(ctx, m))
		assert.NotZero(t, m.ID)
	}

	t.Run("meeting not found", func(t *testing.T) {
		meeting, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, meeting)
	})

	t.Run("get by id", func(t *testing.T) {
		meeting, err := repo.GetByID(ctx, next.ID)
		require.NoError(t, err)
		require.NotNil(t, meeting)
		assert.Equal(t, "Elecciones", meeting.Theme)
		assert.Equal(t, models.GradeMaster, meeting.Grade)
		assert.Equal(t, models.MeetingTypeOrdinary, meeting.Type)
		assert.True(t, next.Date.Equal(meeting.Date))
	})

	t.Run("get all most recent first", func(t *testing.T) {
		meetings, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, meetings, 4)
		assert.Equal(t, later.ID, meetings[0].ID)
		assert.Equal(t, past.ID, meetings[3].ID)
	})

	t.Run("upcoming excludes today and sorts ascending", func(t *testing.T) {
		meetings, err := repo.GetUpcoming(ctx, today, 3)
		require.NoError(t, err)
		require.Len(t, meetings, 2)
		assert.Equal(t, next.ID, meetings[0].ID)
		assert.Equal(t, later.ID, meetings[1].ID)
	})

	t.Run("upcoming respects limit", func(t *testing.T) {
		meetings, err := repo.GetUpcoming(ctx, today, 1)
		require.NoError(t, err)
		require.Len(t, meetings, 1)
		assert.Equal(t, next.ID, meetings[0].ID)
	})

	t.Run("search by theme", func(t *testing.T) {
		meetings, err := repo.Search(ctx, "instrucción", 5)
		require.NoError(t, err)
		assert.Len(t, meetings, 2)
	})

	t.Run("update", func(t *testing.T) {
		current.Theme = "Tenida aplazada"
		current.Type = models.MeetingTypeExtraordinary
		current.Date = today.AddDate(0, 0, 1)
		require.NoError(t, repo.Update(ctx, current))

		meeting, err := repo.GetByID(ctx, current.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tenida aplazada", meeting.Theme)
		assert.Equal(t, models.MeetingTypeExtraordinary, meeting.Type)
		assert.True(t, current.Date.Equal(meeting.Date))
	})

	t.Run("update unknown meeting", func(t *testing.T) {
		missing := testutil.CreateTestMeeting("Nada", models.GradeMaster, today)
		missing.ID = 999999
		assert.ErrorIs(t, repo.Update(ctx, missing), models.ErrMeetingNotFound)
	})

	t.Run("invalid type rejected by schema", func(t *testing.T) {
		meeting := testutil.CreateTestMeeting("Tipo inválido", models.GradeMaster, today)
		meeting.Type = "Solemne"
		assert.Error(t, repo.Create(ctx, meeting))
	})
}
