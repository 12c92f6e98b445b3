package brothers

import (
	"fmt"
	"strings"

	"logia/bot/common"
	"logia/models"

	"github.com/bwmarrin/discordgo"
)

// BuildBrotherListEmbed lists brothers one per line with grade and position
func BuildBrotherListEmbed(brothers []*models.Brother, grade *models.Grade, search string) *discordgo.MessageEmbed {
	title := "👥 Hermanos · " + common.GradeLabel(grade)
	if search != "" {
		title += fmt.Sprintf(" · \"%s\"", search)
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d hermanos", len(brothers)),
		},
	}

	if len(brothers) == 0 {
		embed.Description = "No se encontraron hermanos."
		return embed
	}

	var sb strings.Builder
	for idx, brother := range brothers {
		line := fmt.Sprintf("**%s** · %s", brother.Name, brother.Grade)
		if brother.PositionName != nil {
			line += " · " + *brother.PositionName
		}
		line += "\n"

		if sb.Len()+len(line) > common.MaxEmbedDescription-64 {
			sb.WriteString(fmt.Sprintf("… y %d más", len(brothers)-idx))
			break
		}
		sb.WriteString(line)
	}
	embed.Description = sb.String()

	return embed
}

// BuildGradeDistributionEmbed shows how many brothers hold each grade
func BuildGradeDistributionEmbed(distribution []models.GradeCount) *discordgo.MessageEmbed {
	total := 0
	for _, count := range distribution {
		total += count.Count
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Distribución por grado",
		Color: common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Total: %d hermanos", total),
		},
	}

	for _, count := range distribution {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", count.Grade, count.Count),
			Value: common.FormatRate(count.Percentage),
		})
	}

	return embed
}

// BuildBrotherEmbed shows the record of one brother
func BuildBrotherEmbed(brother *models.Brother) *discordgo.MessageEmbed {
	position := "Sin cargo"
	if brother.PositionName != nil {
		position = *brother.PositionName
	}
	cedula := "-"
	if brother.Cedula != nil && *brother.Cedula != "" {
		cedula = *brother.Cedula
	}

	return &discordgo.MessageEmbed{
		Title: brother.Name,
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Grado", Value: string(brother.Grade), Inline: true},
			{Name: "Cargo", Value: position, Inline: true},
			{Name: "Cédula", Value: cedula, Inline: true},
		},
	}
}
