package repository

import (
	"context"
	"testing"

	"logia/models"
	"logia/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrotherRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBrotherRepository(testDB.DB)
	ctx := context.Background()

	t.Run("brother not found", func(t *testing.T) {
		brother, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, brother)
	})

	t.Run("brother found with position name", func(t *testing.T) {
		positions := NewPositionRepository(testDB.DB)
		secretary, err := positions.GetByName(ctx, "secretario")
		require.NoError(t, err)
		require.NotNil(t, secretary)

		brother := testutil.CreateTestBrotherWithCedula("Fernando García", "V-12345678", models.GradeCompanion)
		brother.PositionID = &secretary.ID
		require.NoError(t, repo.Create(ctx, brother))
		assert.NotZero(t, brother.ID)
		assert.False(t, brother.CreatedAt.IsZero())

		found, err := repo.GetByID(ctx, brother.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Fernando García", found.Name)
		assert.Equal(t, models.GradeCompanion, found.Grade)
		require.NotNil(t, found.Cedula)
		assert.Equal(t, "V-12345678", *found.Cedula)
		require.NotNil(t, found.PositionName)
		assert.Equal(t, "Secretario", *found.PositionName)
	})

	t.Run("duplicate cedula", func(t *testing.T) {
		first := testutil.CreateTestBrotherWithCedula("Primero", "V-1", models.GradeApprentice)
		require.NoError(t, repo.Create(ctx, first))

		second := testutil.CreateTestBrotherWithCedula("Segundo", "V-1", models.GradeApprentice)
		assert.Error(t, repo.Create(ctx, second))
	})

	t.Run("invalid grade rejected by schema", func(t *testing.T) {
		brother := testutil.CreateTestBrother("Grado Inválido", "Gran Maestro")
		assert.Error(t, repo.Create(ctx, brother))
	})
}

func TestBrotherRepository_Queries(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBrotherRepository(testDB.DB)
	ctx := context.Background()

	brothers := []*models.Brother{
		testutil.CreateTestBrotherWithCedula("Carlos Silva", "V-300", models.GradeMaster),
		testutil.CreateTestBrotherWithCedula("Andrés Martínez", "V-100", models.GradeCompanion),
		testutil.CreateTestBrother("Luis Castillo", models.GradeApprentice),
		testutil.CreateTestBrother("Bruno Díaz", models.GradeMaster),
	}
	require.NoError(t, repo.CreateMany(ctx, brothers))
	for _, b := range brothers {
		assert.NotZero(t, b.ID)
	}

	t.Run("get all ordered by name", func(t *testing.T) {
		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "Andrés Martínez", all[0].Name)
		assert.Equal(t, "Bruno Díaz", all[1].Name)
		assert.Equal(t, "Carlos Silva", all[2].Name)
		assert.Equal(t, "Luis Castillo", all[3].Name)
	})

	t.Run("get by grade", func(t *testing.T) {
		masters, err := repo.GetByGrade(ctx, models.GradeMaster)
		require.NoError(t, err)
		require.Len(t, masters, 2)
		assert.Equal(t, "Bruno Díaz", masters[0].Name)
	})

	t.Run("search by name ignores case", func(t *testing.T) {
		found, err := repo.Search(ctx, "cAsTi", 5)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Luis Castillo", found[0].Name)
	})

	t.Run("search keeps accents", func(t *testing.T) {
		found, err := repo.Search(ctx, "martinez", 5)
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = repo.Search(ctx, "martínez", 5)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Andrés Martínez", found[0].Name)
	})

	t.Run("search by cedula", func(t *testing.T) {
		found, err := repo.Search(ctx, "V-1", 5)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Andrés Martínez", found[0].Name)
	})

	t.Run("search respects limit", func(t *testing.T) {
		found, err := repo.Search(ctx, "a", 2)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		found, err := repo.Search(ctx, "%", 5)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestBrotherRepository_Positions(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBrotherRepository(testDB.DB)
	positions := NewPositionRepository(testDB.DB)
	ctx := context.Background()

	treasurer, err := positions.GetByName(ctx, "Tesorero")
	require.NoError(t, err)
	require.NotNil(t, treasurer)

	first := testutil.CreateTestBrother("Primero", models.GradeMaster)
	second := testutil.CreateTestBrother("Segundo", models.GradeCompanion)
	require.NoError(t, repo.CreateMany(ctx, []*models.Brother{first, second}))

	t.Run("update grade and position", func(t *testing.T) {
		require.NoError(t, repo.UpdateGradeAndPosition(ctx, first.ID, models.GradeMaster, &treasurer.ID))

		holder, err := repo.GetByPosition(ctx, treasurer.ID)
		require.NoError(t, err)
		require.NotNil(t, holder)
		assert.Equal(t, first.ID, holder.ID)
	})

	t.Run("position held by one brother at a time", func(t *testing.T) {
		err := repo.UpdateGradeAndPosition(ctx, second.ID, models.GradeCompanion, &treasurer.ID)
		assert.Error(t, err)
	})

	t.Run("clear position", func(t *testing.T) {
		require.NoError(t, repo.ClearPosition(ctx, treasurer.ID))

		holder, err := repo.GetByPosition(ctx, treasurer.ID)
		require.NoError(t, err)
		assert.Nil(t, holder)
	})

	t.Run("update unknown brother", func(t *testing.T) {
		err := repo.UpdateGradeAndPosition(ctx, 999999, models.GradeMaster, nil)
		assert.ErrorIs(t, err, models.ErrBrotherNotFound)
	})
}
