package attendance

import (
	"logia/bot/common"
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// ReportImageName is the attachment name of the attendance table image
const ReportImageName = "asistencias.png"

// Feature handles the /asistencias report and the /asistencia command
type Feature struct {
	attendanceService service.AttendanceService
	meetingService    service.MeetingService
}

// NewFeature creates a new attendance feature instance
func NewFeature(attendanceService service.AttendanceService, meetingService service.MeetingService) *Feature {
	return &Feature{
		attendanceService: attendanceService,
		meetingService:    meetingService,
	}
}

// HandleCommand routes /asistencias and the /asistencia subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name == "asistencias" {
		f.handleReport(s, i, common.NewOptions(data.Options))
		return
	}

	sub := common.SubCommand(data.Options)
	if sub == nil {
		common.RespondWithError(s, i, "Indica un subcomando: registrar, quitar, lista o hermano")
		return
	}

	options := common.NewOptions(sub.Options)
	switch sub.Name {
	case "registrar":
		f.handleRecord(s, i, options)
	case "quitar":
		f.handleRemove(s, i, options)
	case "lista":
		f.handleAttendees(s, i, options)
	case "hermano":
		f.handleBrotherSummary(s, i, options)
	default:
		common.RespondWithError(s, i, "Subcomando desconocido")
	}
}
