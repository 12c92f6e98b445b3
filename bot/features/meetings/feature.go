package meetings

import (
	"time"

	"logia/bot/common"
	"logia/export"
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /tenidas and /convocatoria commands
type Feature struct {
	meetingService service.MeetingService
	lodge          export.Lodge
	templeAddress  string
	now            func() time.Time
}

// NewFeature creates a new meetings feature instance. templeAddress is printed
// on convocations for temples without an address of their own.
func NewFeature(meetingService service.MeetingService, lodge export.Lodge, templeAddress string) *Feature {
	return &Feature{
		meetingService: meetingService,
		lodge:          lodge,
		templeAddress:  templeAddress,
		now:            time.Now,
	}
}

// HandleCommand routes /convocatoria and the /tenidas subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name == "convocatoria" {
		f.handleConvocation(s, i, common.NewOptions(data.Options))
		return
	}

	sub := common.SubCommand(data.Options)
	if sub == nil {
		common.RespondWithError(s, i, "Indica un subcomando: listar, proximas, ver, crear, editar o templos")
		return
	}

	options := common.NewOptions(sub.Options)
	switch sub.Name {
	case "listar":
		f.handleList(s, i)
	case "proximas":
		f.handleUpcoming(s, i, options)
	case "ver":
		f.handleShow(s, i, options)
	case "crear":
		f.handleCreate(s, i, options)
	case "editar":
		f.handleEdit(s, i, options)
	case "templos":
		f.handleTemples(s, i)
	default:
		common.RespondWithError(s, i, "Subcomando desconocido")
	}
}
