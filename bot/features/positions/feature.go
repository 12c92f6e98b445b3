package positions

import (
	"logia/bot/common"
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /cuadro and /cargo commands
type Feature struct {
	positionService service.PositionService
}

// NewFeature creates a new positions feature instance
func NewFeature(positionService service.PositionService) *Feature {
	return &Feature{
		positionService: positionService,
	}
}

// HandleCommand routes /cuadro and the /cargo subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name == "cuadro" {
		f.handleBoard(s, i)
		return
	}

	sub := common.SubCommand(data.Options)
	if sub == nil {
		common.RespondWithError(s, i, "Indica un subcomando: asignar o historial")
		return
	}

	options := common.NewOptions(sub.Options)
	switch sub.Name {
	case "asignar":
		f.handleAssign(s, i, options)
	case "historial":
		f.handleHistory(s, i, options)
	default:
		common.RespondWithError(s, i, "Subcomando desconocido")
	}
}
