package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"logia/bot/common"
	"logia/export"
	"logia/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Report kinds offered by /exportar
const (
	ReportAttendance = "asistencias"
	ReportBrothers   = "hermanos"
)

func (f *Feature) handleExport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := common.NewOptions(i.ApplicationCommandData().Options)

	format, err := export.ParseFormat(options.String("formato"))
	if err != nil {
		common.RespondWithError(s, i, "Formato no soportado. Usa PDF o Excel.")
		return
	}
	grade, err := options.Grade("grado")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	kind := options.String("reporte")

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring /exportar: %v", err)
		return
	}

	ctx := context.Background()
	var buf bytes.Buffer
	if err := f.render(ctx, &buf, kind, format, grade); err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	file := &discordgo.File{
		Name:        export.ReportFileName(kind, string(format), f.now()),
		ContentType: format.ContentType(),
		Reader:      &buf,
	}

	log.WithFields(log.Fields{
		"report": kind,
		"format": format,
		"grade":  common.GradeLabel(grade),
		"bytes":  buf.Len(),
	}).Info("Report exported from Discord")

	if err := common.FollowUpWithFile(s, i, "📎 "+file.Name, file); err != nil {
		log.Errorf("Error sending exported report: %v", err)
	}
}

// render writes the requested report into w
func (f *Feature) render(ctx context.Context, w io.Writer, kind string, format export.Format, grade *models.Grade) error {
	header := export.Header{
		Lodge:     f.lodge,
		Generated: f.now(),
	}

	switch kind {
	case ReportAttendance:
		report, err := f.attendanceService.GetAttendanceReport(ctx, grade)
		if err != nil {
			return err
		}
		header.Subtitle = "Reporte de asistencias · " + common.GradeLabel(grade)
		return export.RenderAttendance(w, format, report, header)
	case ReportBrothers:
		brothers, err := f.brotherService.ListBrothers(ctx, grade, "")
		if err != nil {
			return err
		}
		header.Subtitle = "Listado de hermanos · " + common.GradeLabel(grade)
		return export.RenderBrothers(w, format, brothers, header)
	}
	return fmt.Errorf("unknown report %q", kind)
}
