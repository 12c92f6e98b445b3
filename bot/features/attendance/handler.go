package attendance

import (
	"bytes"
	"context"

	"logia/bot/common"
	"logia/export"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleReport(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	grade, err := options.Grade("grado")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	// Rendering the table image can take a moment
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring /asistencias: %v", err)
		return
	}

	ctx := context.Background()
	report, err := f.attendanceService.GetAttendanceReport(ctx, grade)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	embed := BuildReportEmbed(report)

	var files []*discordgo.File
	if len(report.Summaries) > 0 {
		imageData, err := export.AttendanceImage(report, "Asistencias · "+common.GradeLabel(grade))
		if err != nil {
			log.WithError(err).Warn("Failed to render attendance image, sending embed only")
		} else {
			embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + ReportImageName}
			files = append(files, &discordgo.File{
				Name:        ReportImageName,
				ContentType: "image/png",
				Reader:      bytes.NewReader(imageData),
			})
		}
	}

	if _, err := common.FollowUpWithEmbed(s, i, embed, files, false); err != nil {
		log.Errorf("Error sending attendance report: %v", err)
	}
}

func (f *Feature) handleRecord(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	meetingID, _ := options.Int("tenida")
	brotherID, _ := options.Int("hermano")

	if _, err := f.attendanceService.RecordAttendance(ctx, meetingID, brotherID); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"meeting_id": meetingID,
		"brother_id": brotherID,
	}).Info("Attendance recorded from Discord")

	if err := common.RespondWithSuccess(s, i, "Asistencia registrada.", true); err != nil {
		log.Errorf("Error responding to /asistencia registrar: %v", err)
	}
}

func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	meetingID, _ := options.Int("tenida")
	brotherID, _ := options.Int("hermano")

	if err := f.attendanceService.RemoveAttendance(ctx, meetingID, brotherID); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithSuccess(s, i, "Asistencia eliminada.", true); err != nil {
		log.Errorf("Error responding to /asistencia quitar: %v", err)
	}
}

func (f *Feature) handleAttendees(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	meetingID, _ := options.Int("tenida")

	meeting, err := f.meetingService.GetMeeting(ctx, meetingID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	attendees, err := f.attendanceService.ListAttendees(ctx, meetingID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildAttendeesEmbed(meeting, attendees), false); err != nil {
		log.Errorf("Error responding to /asistencia lista: %v", err)
	}
}

func (f *Feature) handleBrotherSummary(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	brotherID, _ := options.Int("hermano")

	summary, err := f.attendanceService.GetBrotherSummary(ctx, brotherID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildSummaryEmbed(summary), false); err != nil {
		log.Errorf("Error responding to /asistencia hermano: %v", err)
	}
}
