package overview

import (
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /resumen and /buscar commands
type Feature struct {
	overviewService service.OverviewService
}

// NewFeature creates a new overview feature instance
func NewFeature(overviewService service.OverviewService) *Feature {
	return &Feature{
		overviewService: overviewService,
	}
}

// HandleCommand routes /resumen and /buscar
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "resumen":
		f.handleOverview(s, i)
	case "buscar":
		f.handleSearch(s, i)
	}
}
