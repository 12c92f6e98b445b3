package brothers

import (
	"fmt"
	"strings"
	"testing"

	"logia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBrotherListEmbed(t *testing.T) {
	secretary := "Secretario"
	brothers := []*models.Brother{
		{ID: 1, Name: "Ana Pérez", Grade: models.GradeMaster, PositionName: &secretary},
		{ID: 2, Name: "Luis Mora", Grade: models.GradeApprentice},
	}
	master := models.GradeMaster

	embed := BuildBrotherListEmbed(brothers, &master, "pe")

	assert.Equal(t, "👥 Hermanos · Maestro · \"pe\"", embed.Title)
	assert.Contains(t, embed.Description, "**Ana Pérez** · Maestro · Secretario\n")
	assert.Contains(t, embed.Description, "**Luis Mora** · Aprendiz\n")
	assert.Equal(t, "2 hermanos", embed.Footer.Text)
}

func TestBuildBrotherListEmbed_Empty(t *testing.T) {
	embed := BuildBrotherListEmbed(nil, nil, "")

	assert.Equal(t, "👥 Hermanos · Todos los grados", embed.Title)
	assert.Equal(t, "No se encontraron hermanos.", embed.Description)
}

func TestBuildBrotherListEmbed_TruncatesLongRosters(t *testing.T) {
	brothers := make([]*models.Brother, 300)
	for idx := range brothers {
		brothers[idx] = &models.Brother{ID: int64(idx), Name: fmt.Sprintf("Hermano con nombre largo %03d", idx), Grade: models.GradeCompanion}
	}

	embed := BuildBrotherListEmbed(brothers, nil, "")

	assert.LessOrEqual(t, len(embed.Description), 4096)
	assert.True(t, strings.Contains(embed.Description, "más"))
	assert.Equal(t, "300 hermanos", embed.Footer.Text)
}

func TestBuildGradeDistributionEmbed(t *testing.T) {
	embed := BuildGradeDistributionEmbed([]models.GradeCount{
		{Grade: models.GradeApprentice, Count: 1, Percentage: 25},
		{Grade: models.GradeCompanion, Count: 0, Percentage: 0},
		{Grade: models.GradeMaster, Count: 3, Percentage: 75},
	})

	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "Aprendiz (1)", embed.Fields[0].Name)
	assert.Equal(t, "Maestro (3)", embed.Fields[2].Name)
	assert.Contains(t, embed.Fields[2].Value, "75%")
	assert.Equal(t, "Total: 4 hermanos", embed.Footer.Text)
}

func TestBuildBrotherEmbed_WithoutPosition(t *testing.T) {
	embed := BuildBrotherEmbed(&models.Brother{Name: "Luis Mora", Grade: models.GradeApprentice})

	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "Sin cargo", embed.Fields[1].Value)
	assert.Equal(t, "-", embed.Fields[2].Value)
}
