package reports

import (
	"time"

	"logia/export"
	"logia/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /exportar command
type Feature struct {
	attendanceService service.AttendanceService
	brotherService    service.BrotherService
	lodge             export.Lodge
	now               func() time.Time
}

// NewFeature creates a new reports feature instance
func NewFeature(attendanceService service.AttendanceService, brotherService service.BrotherService, lodge export.Lodge) *Feature {
	return &Feature{
		attendanceService: attendanceService,
		brotherService:    brotherService,
		lodge:             lodge,
		now:               time.Now,
	}
}

// HandleCommand handles /exportar
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleExport(s, i)
}
