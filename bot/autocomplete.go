package bot

import (
	"context"
	"fmt"

	"logia/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleAutocomplete suggests brothers, meetings, positions and temples while an option is typed
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	focused := common.Focused(i.ApplicationCommandData().Options)
	if focused == nil {
		return
	}

	ctx := context.Background()
	query := ""
	if focused.Value != nil {
		query = fmt.Sprint(focused.Value)
	}

	var (
		choices []*discordgo.ApplicationCommandOptionChoice
		err     error
	)

	switch focused.Name {
	case "hermano":
		choices, err = b.brotherChoices(ctx, query)
	case "tenida":
		choices, err = b.meetingChoices(ctx, query)
	case "cargo":
		choices, err = b.positionChoices(ctx, query)
	case "templo":
		choices, err = b.templeChoices(ctx, query)
	default:
		return
	}

	if err != nil {
		log.WithFields(log.Fields{
			"option": focused.Name,
			"query":  query,
			"error":  err,
		}).Error("Failed to build autocomplete choices")
		choices = nil
	}

	common.RespondWithChoices(s, i, choices)
}

func (b *Bot) brotherChoices(ctx context.Context, query string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	suggestions, err := b.services.Attendance.SuggestBrothers(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 && query == "" {
		suggestions, err = b.services.Brothers.ListBrothers(ctx, nil, "")
		if err != nil {
			return nil, err
		}
	}
	return common.BrotherChoices(suggestions), nil
}

func (b *Bot) meetingChoices(ctx context.Context, query string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	meetings, err := b.services.Meetings.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}
	return common.MeetingChoices(meetings, query), nil
}

func (b *Bot) positionChoices(ctx context.Context, query string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	board, err := b.services.Positions.GetBoard(ctx)
	if err != nil {
		return nil, err
	}
	return common.PositionChoices(board, query), nil
}

func (b *Bot) templeChoices(ctx context.Context, query string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	temples, err := b.services.Meetings.ListTemples(ctx)
	if err != nil {
		return nil, err
	}
	return common.TempleChoices(temples, query), nil
}
