package positions

import (
	"testing"
	"time"

	"logia/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildBoardEmbed(t *testing.T) {
	board := []*models.PositionHolder{
		{Position: &models.Position{ID: 1, Name: "Venerable Maestro"}, Brother: &models.Brother{Name: "Luis Mora"}},
		{Position: &models.Position{ID: 5, Name: "Secretario"}},
	}

	embed := BuildBoardEmbed(board)

	assert.Equal(t, "**Venerable Maestro**: Luis Mora\n**Secretario**: *Vacante*\n", embed.Description)
	assert.Equal(t, "2 cargos · 1 vacantes", embed.Footer.Text)
}

func TestBuildHistoryEmbed(t *testing.T) {
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	history := []*models.PositionHistoryEntry{
		{BrotherName: "Ana Pérez", StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{BrotherName: "Luis Mora", StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
	}

	embed := BuildHistoryEmbed("Tesorero", history)

	assert.Equal(t, "📜 Historial · Tesorero", embed.Title)
	assert.Equal(t, "**Ana Pérez** · 01/07/2026 → actual\n**Luis Mora** · 01/07/2025 → 30/06/2026\n", embed.Description)

	assert.Equal(t, "El cargo nunca ha sido ocupado.", BuildHistoryEmbed("Tesorero", nil).Description)
}

func TestAssignmentMessage(t *testing.T) {
	position := &models.Position{ID: 5, Name: "Secretario"}

	assert.Equal(t, "Ana Pérez es ahora Secretario.", AssignmentMessage(&models.PositionHolder{Position: position, Brother: &models.Brother{Name: "Ana Pérez"}}))
	assert.Equal(t, "El cargo de Secretario quedó vacante.", AssignmentMessage(&models.PositionHolder{Position: position}))
}

func TestFindHolder(t *testing.T) {
	board := []*models.PositionHolder{{Position: &models.Position{ID: 5, Name: "Secretario"}}}

	assert.NotNil(t, findHolder(board, 5))
	assert.Nil(t, findHolder(board, 9))
}
