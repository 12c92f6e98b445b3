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

func TestPositionRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	brothers := NewBrotherRepository(testDB.DB)
	repo := NewPositionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("seeded positions", func(t *testing.T) {
		positions, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, positions)

		master, err := repo.GetByName(ctx, "  VENERABLE maestro ")
		require.NoError(t, err)
		require.NotNil(t, master)
		assert.Equal(t, "Venerable Maestro", master.Name)

		byID, err := repo.GetByID(ctx, master.ID)
		require.NoError(t, err)
		assert.Equal(t, master, byID)
	})

	t.Run("unknown position", func(t *testing.T) {
		position, err := repo.GetByName(ctx, "Gran Canciller")
		require.NoError(t, err)
		assert.Nil(t, position)

		position, err = repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, position)
	})

	t.Run("holders", func(t *testing.T) {
		orator, err := repo.GetByName(ctx, "Orador")
		require.NoError(t, err)

		brother := testutil.CreateTestBrother("Roberto López", models.GradeMaster)
		brother.PositionID = &orator.ID
		require.NoError(t, brothers.Create(ctx, brother))

		holders, err := repo.GetHolders(ctx)
		require.NoError(t, err)

		var found bool
		for _, holder := range holders {
			if holder.Position.ID == orator.ID {
				found = true
				require.NotNil(t, holder.Brother)
				assert.Equal(t, brother.ID, holder.Brother.ID)
				assert.Equal(t, "Orador", *holder.Brother.PositionName)
			} else {
				assert.Nil(t, holder.Brother, "position %s", holder.Position.Name)
			}
		}
		assert.True(t, found)
	})

	t.Run("history", func(t *testing.T) {
		hospitaller, err := repo.GetByName(ctx, "Hospitalario")
		require.NoError(t, err)

		first := testutil.CreateTestBrother("Diego Herrera", models.GradeCompanion)
		second := testutil.CreateTestBrother("Sebastián Morales", models.GradeApprentice)
		require.NoError(t, brothers.CreateMany(ctx, []*models.Brother{first, second}))

		start := testutil.Day(time.Now()).AddDate(-1, 0, 0)
		handover := testutil.Day(time.Now())

		require.NoError(t, repo.OpenHistory(ctx, hospitaller.ID, first.ID, start))
		require.NoError(t, repo.CloseHistory(ctx, hospitaller.ID, handover))
		require.NoError(t, repo.OpenHistory(ctx, hospitaller.ID, second.ID, handover))

		history, err := repo.GetHistory(ctx, hospitaller.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)

		assert.Equal(t, "Sebastián Morales", history[0].BrotherName)
		assert.True(t, history[0].IsCurrent())
		assert.Equal(t, "Diego Herrera", history[1].BrotherName)
		require.NotNil(t, history[1].EndDate)
		assert.True(t, handover.Equal(*history[1].EndDate))
		assert.True(t, start.Equal(history[1].StartDate))
	})
}
