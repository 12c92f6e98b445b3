package overview

import (
	"fmt"
	"strings"

	"logia/bot/common"
	"logia/models"

	"github.com/bwmarrin/discordgo"
)

// BuildOverviewEmbed shows the dashboard summary of the lodge
func BuildOverviewEmbed(overview *models.Overview) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏛️ Resumen de la logia",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Hermanos", Value: fmt.Sprintf("%d", overview.TotalBrothers), Inline: true},
			{Name: "Tenidas", Value: fmt.Sprintf("%d", overview.TotalMeetings), Inline: true},
			{Name: "Asistencia promedio", Value: common.FormatRate(overview.AverageAttendance)},
		},
	}

	var grades []string
	for _, count := range overview.GradeDistribution {
		grades = append(grades, fmt.Sprintf("%s: %d (%d%%)", count.Grade, count.Count, count.Percentage))
	}
	if len(grades) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Por grado",
			Value: strings.Join(grades, "\n"),
		})
	}

	upcoming := "No hay tenidas programadas."
	if len(overview.UpcomingMeetings) > 0 {
		lines := make([]string, 0, len(overview.UpcomingMeetings))
		for _, meeting := range overview.UpcomingMeetings {
			lines = append(lines, fmt.Sprintf("• %s (%s)", common.MeetingLabel(meeting), meeting.Grade))
		}
		upcoming = strings.Join(lines, "\n")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Próximas tenidas",
		Value: common.Truncate(upcoming, 1024),
	})

	return embed
}

// BuildSearchEmbed lists the brothers and meetings matching a query
func BuildSearchEmbed(query string, results *models.SearchResults) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🔎 Resultados para \"%s\"", query),
		Color: common.ColorInfo,
	}

	if len(results.Brothers) == 0 && len(results.Meetings) == 0 {
		embed.Description = "Sin resultados."
		return embed
	}

	if len(results.Brothers) > 0 {
		lines := make([]string, 0, len(results.Brothers))
		for _, brother := range results.Brothers {
			lines = append(lines, fmt.Sprintf("• %s · %s", common.BrotherLabel(brother), brother.Grade))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Hermanos",
			Value: common.Truncate(strings.Join(lines, "\n"), 1024),
		})
	}

	if len(results.Meetings) > 0 {
		lines := make([]string, 0, len(results.Meetings))
		for _, meeting := range results.Meetings {
			lines = append(lines, "• "+common.MeetingLabel(meeting))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Tenidas",
			Value: common.Truncate(strings.Join(lines, "\n"), 1024),
		})
	}

	return embed
}
