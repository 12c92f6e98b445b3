package meetings

import (
	"fmt"

	"logia/bot/common"
	"logia/models"
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// BuildMeetingEmbed shows the details of a meeting
func BuildMeetingEmbed(meeting *models.Meeting, location string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: meeting.Theme,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Fecha", Value: common.FormatDate(meeting.Date), Inline: true},
			{Name: "Tipo", Value: string(meeting.Type), Inline: true},
			{Name: "Grado", Value: string(meeting.Grade), Inline: true},
			{Name: "Lugar", Value: location},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Tenida #%d", meeting.ID),
		},
	}
}

// BuildMeetingListEmbed lists meetings as one field each
func BuildMeetingListEmbed(title string, meetings []*models.Meeting) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorPrimary,
	}

	if len(meetings) == 0 {
		embed.Description = "No hay tenidas."
		return embed
	}

	for idx, meeting := range meetings {
		if idx == common.MaxEmbedFields {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Mostrando %d de %d tenidas", common.MaxEmbedFields, len(meetings)),
			}
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  common.Truncate(common.MeetingLabel(meeting), 256),
			Value: fmt.Sprintf("%s · %s", meeting.Type, meeting.Grade),
		})
	}

	return embed
}

// BuildTempleListEmbed lists the registered temples with their address
func BuildTempleListEmbed(temples []*models.Temple) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏛️ Templos",
		Color: common.ColorInfo,
	}

	if len(temples) == 0 {
		embed.Description = "No hay templos registrados."
		return embed
	}

	for _, temple := range temples {
		address := "Sin dirección"
		if temple.Address != nil && *temple.Address != "" {
			address = *temple.Address
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  service.TempleLabel(temple),
			Value: address,
		})
	}

	return embed
}
