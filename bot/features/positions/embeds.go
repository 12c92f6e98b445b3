package positions

import (
	"fmt"
	"strings"

	"logia/bot/common"
	"logia/models"

	"github.com/bwmarrin/discordgo"
)

// BuildBoardEmbed shows every position with its current holder
func BuildBoardEmbed(board []*models.PositionHolder) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏛️ Cuadro logial",
		Color: common.ColorPrimary,
	}

	vacant := 0
	var sb strings.Builder
	for _, holder := range board {
		name := "*Vacante*"
		if holder.Brother != nil {
			name = holder.Brother.Name
		} else {
			vacant++
		}
		sb.WriteString(fmt.Sprintf("**%s**: %s\n", holder.Position.Name, name))
	}
	embed.Description = common.Truncate(sb.String(), common.MaxEmbedDescription)
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d cargos · %d vacantes", len(board), vacant),
	}

	return embed
}

// BuildHistoryEmbed lists the tenures of a position, newest first
func BuildHistoryEmbed(positionName string, history []*models.PositionHistoryEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Historial · " + positionName,
		Color: common.ColorInfo,
	}

	if len(history) == 0 {
		embed.Description = "El cargo nunca ha sido ocupado."
		return embed
	}

	var sb strings.Builder
	for _, entry := range history {
		end := "actual"
		if !entry.IsCurrent() {
			end = common.FormatDate(*entry.EndDate)
		}
		sb.WriteString(fmt.Sprintf("**%s** · %s → %s\n", entry.BrotherName, common.FormatDate(entry.StartDate), end))
	}
	embed.Description = common.Truncate(sb.String(), common.MaxEmbedDescription)

	return embed
}

// AssignmentMessage confirms who now holds a position
func AssignmentMessage(holder *models.PositionHolder) string {
	if holder.Brother == nil {
		return fmt.Sprintf("El cargo de %s quedó vacante.", holder.Position.Name)
	}
	return fmt.Sprintf("%s es ahora %s.", holder.Brother.Name, holder.Position.Name)
}
