package brothers

import (
	"net/http"
	"time"

	"logia/bot/common"
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /hermanos command
type Feature struct {
	brotherService service.BrotherService
	httpClient     *http.Client
}

// NewFeature creates a new brothers feature instance
func NewFeature(brotherService service.BrotherService) *Feature {
	return &Feature{
		brotherService: brotherService,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

// HandleCommand routes the /hermanos subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := common.SubCommand(i.ApplicationCommandData().Options)
	if sub == nil {
		common.RespondWithError(s, i, "Indica un subcomando: listar, grados, editar o importar")
		return
	}

	options := common.NewOptions(sub.Options)
	switch sub.Name {
	case "listar":
		f.handleList(s, i, options)
	case "grados":
		f.handleGrades(s, i)
	case "editar":
		f.handleEdit(s, i, options)
	case "importar":
		f.handleImport(s, i, options)
	default:
		common.RespondWithError(s, i, "Subcomando desconocido")
	}
}
