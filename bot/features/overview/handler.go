package overview

import (
	"context"

	"logia/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleOverview(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	overview, err := f.overviewService.GetOverview(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildOverviewEmbed(overview), false); err != nil {
		log.Errorf("Error responding to /resumen: %v", err)
	}
}

func (f *Feature) handleSearch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	query := common.NewOptions(i.ApplicationCommandData().Options).String("texto")

	results, err := f.overviewService.Search(ctx, query)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildSearchEmbed(query, results), true); err != nil {
		log.Errorf("Error responding to /buscar: %v", err)
	}
}
