package common

import (
	"strings"

	"logia/models"
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// maxChoiceName is the longest label Discord accepts for a choice
const maxChoiceName = 100

func choice(name string, id int64) *discordgo.ApplicationCommandOptionChoice {
	return &discordgo.ApplicationCommandOptionChoice{
		Name:  Truncate(name, maxChoiceName),
		Value: id,
	}
}

func matches(label, query string) bool {
	needle := models.FoldLabel(query)
	return needle == "" || strings.Contains(models.FoldLabel(label), needle)
}

// BrotherChoices turns brothers into autocomplete choices
func BrotherChoices(brothers []*models.Brother) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(brothers), MaxAutocompleteItems))
	for _, brother := range brothers {
		if len(choices) == MaxAutocompleteItems {
			break
		}
		choices = append(choices, choice(BrotherLabel(brother), brother.ID))
	}
	return choices
}

// MeetingChoices lists the meetings whose theme or date matches the query
func MeetingChoices(meetings []*models.Meeting, query string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0)
	for _, meeting := range meetings {
		if len(choices) == MaxAutocompleteItems {
			break
		}
		label := MeetingLabel(meeting)
		if matches(label, query) || matches(meeting.Date.Format("2006-01-02"), query) {
			choices = append(choices, choice(label, meeting.ID))
		}
	}
	return choices
}

// PositionChoices lists the positions whose name matches the query, with their holder
func PositionChoices(board []*models.PositionHolder, query string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0)
	for _, holder := range board {
		if len(choices) == MaxAutocompleteItems {
			break
		}
		if !matches(holder.Position.Name, query) {
			continue
		}
		label := holder.Position.Name + " · vacante"
		if holder.Brother != nil {
			label = holder.Position.Name + " · " + holder.Brother.Name
		}
		choices = append(choices, choice(label, holder.Position.ID))
	}
	return choices
}

// TempleChoices lists the temples whose name matches the query
func TempleChoices(temples []*models.Temple, query string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0)
	for _, temple := range temples {
		if len(choices) == MaxAutocompleteItems {
			break
		}
		label := service.TempleLabel(temple)
		if matches(label, query) {
			choices = append(choices, choice(label, temple.ID))
		}
	}
	return choices
}
