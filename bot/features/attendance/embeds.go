package attendance

import (
	"fmt"
	"strings"

	"logia/bot/common"
	"logia/models"

	"github.com/bwmarrin/discordgo"
)

// BuildReportEmbed summarizes an attendance report; the table itself is attached as an image
func BuildReportEmbed(report *models.AttendanceReport) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📋 Asistencias · " + common.GradeLabel(report.Grade),
		Color: common.ColorPrimary,
	}

	if len(report.Summaries) == 0 {
		embed.Description = "No hay hermanos en este grado."
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Hermanos", Value: fmt.Sprintf("%d", len(report.Summaries)), Inline: true},
		{Name: "Promedio general", Value: common.FormatRate(report.Averages.AverageOverallRate), Inline: false},
		{Name: "Promedio por grado", Value: common.FormatRate(report.Averages.AverageGradeRate), Inline: false},
	}

	if low := lowAttendance(report.Summaries, 50); len(low) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "⚠️ Asistencia menor al 50%",
			Value: common.Truncate(strings.Join(low, "\n"), 1024),
		})
	}

	return embed
}

// lowAttendance lists the brothers with applicable meetings whose rate is below threshold
func lowAttendance(summaries []*models.AttendanceSummary, threshold int) []string {
	var names []string
	for _, summary := range summaries {
		if summary.ApplicableCount > 0 && summary.AttendanceRate < threshold {
			names = append(names, fmt.Sprintf("%s · %d%%", summary.Brother.Name, summary.AttendanceRate))
		}
	}
	return names
}

// BuildAttendeesEmbed lists who attended a meeting
func BuildAttendeesEmbed(meeting *models.Meeting, attendees []*models.AttendanceDetail) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🕯️ " + common.MeetingLabel(meeting),
		Color: common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d asistentes · Tenida %s de %s", len(attendees), meeting.Type, meeting.Grade),
		},
	}

	if len(attendees) == 0 {
		embed.Description = "Aún no hay asistencias registradas."
		return embed
	}

	lines := make([]string, 0, len(attendees))
	for _, detail := range attendees {
		lines = append(lines, fmt.Sprintf("• %s (%s)", detail.Brother.Name, detail.Brother.Grade))
	}
	embed.Description = common.Truncate(strings.Join(lines, "\n"), common.MaxEmbedDescription)

	return embed
}

// BuildSummaryEmbed shows the attendance statistics of one brother
func BuildSummaryEmbed(summary *models.AttendanceSummary) *discordgo.MessageEmbed {
	color := common.ColorSuccess
	if summary.ApplicableCount > 0 && summary.AttendanceRate < 50 {
		color = common.ColorWarning
	}

	return &discordgo.MessageEmbed{
		Title:       summary.Brother.Name,
		Description: "Grado: " + string(summary.Brother.Grade),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Asistencias", Value: fmt.Sprintf("%d", summary.AttendedCount), Inline: true},
			{Name: "Tenidas aplicables", Value: fmt.Sprintf("%d", summary.ApplicableCount), Inline: true},
			{Name: "Inasistencias", Value: fmt.Sprintf("%d", summary.AbsenceCount), Inline: true},
			{Name: "Tasa de asistencia", Value: common.FormatRate(summary.AttendanceRate)},
			{
				Name:  "En su grado",
				Value: fmt.Sprintf("%d de %d tenidas\n%s", summary.GradeAttendances, summary.GradeSessions, common.FormatRate(summary.GradeRate)),
			},
		},
	}
}
