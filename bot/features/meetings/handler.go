package meetings

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"logia/bot/common"
	"logia/export"
	"logia/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var errInvalidDate = errors.New("invalid date")

// dateLayouts are the date formats accepted by the fecha option
var dateLayouts = []string{time.DateOnly, "02/01/2006", "2/1/2006"}

// ParseMeetingDate parses a date typed as AAAA-MM-DD or DD/MM/AAAA
func ParseMeetingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidDate
}

// applyMeetingOptions copies the given options onto a meeting, leaving absent ones untouched
func applyMeetingOptions(meeting *models.Meeting, options common.Options) error {
	if theme, ok := options["tema"]; ok {
		meeting.Theme = theme.StringValue()
	}
	if _, ok := options["fecha"]; ok {
		date, err := ParseMeetingDate(options.String("fecha"))
		if err != nil {
			return err
		}
		meeting.Date = date
	}
	if _, ok := options["tipo"]; ok {
		meeting.Type = models.MeetingType(options.String("tipo"))
	}
	if _, ok := options["grado"]; ok {
		meeting.Grade = models.Grade(options.String("grado"))
	}
	if templeID, ok := options.Int("templo"); ok {
		meeting.Location = strconv.FormatInt(templeID, 10)
	} else if _, ok := options["lugar"]; ok {
		meeting.Location = options.String("lugar")
	}
	return nil
}

func respondWithDateError(s *discordgo.Session, i *discordgo.InteractionCreate) {
	common.RespondWithError(s, i, "Fecha inválida. Usa AAAA-MM-DD o DD/MM/AAAA.")
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	meetings, err := f.meetingService.ListMeetings(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildMeetingListEmbed("🗓️ Tenidas", meetings), false); err != nil {
		log.Errorf("Error responding to /tenidas listar: %v", err)
	}
}

func (f *Feature) handleUpcoming(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	limit, _ := options.Int("cantidad")

	meetings, err := f.meetingService.GetUpcomingMeetings(ctx, int(limit))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildMeetingListEmbed("⏳ Próximas tenidas", meetings), false); err != nil {
		log.Errorf("Error responding to /tenidas proximas: %v", err)
	}
}

func (f *Feature) handleShow(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	meetingID, _ := options.Int("tenida")

	meeting, err := f.meetingService.GetMeeting(ctx, meetingID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	location, err := f.meetingService.ResolveLocation(ctx, meeting)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildMeetingEmbed(meeting, location, common.ColorInfo), false); err != nil {
		log.Errorf("Error responding to /tenidas ver: %v", err)
	}
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()

	meeting := &models.Meeting{}
	if err := applyMeetingOptions(meeting, options); err != nil {
		respondWithDateError(s, i)
		return
	}

	created, err := f.meetingService.CreateMeeting(ctx, meeting)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	location, err := f.meetingService.ResolveLocation(ctx, created)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve meeting location")
		location = created.Location
	}

	log.WithFields(log.Fields{
		"meeting_id": created.ID,
		"date":       created.Date.Format(time.DateOnly),
	}).Info("Meeting scheduled from Discord")

	if err := common.RespondWithEmbed(s, i, BuildMeetingEmbed(created, location, common.ColorSuccess), false); err != nil {
		log.Errorf("Error responding to /tenidas crear: %v", err)
	}
}

func (f *Feature) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	meetingID, _ := options.Int("tenida")

	meeting, err := f.meetingService.GetMeeting(ctx, meetingID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := applyMeetingOptions(meeting, options); err != nil {
		respondWithDateError(s, i)
		return
	}

	updated, err := f.meetingService.UpdateMeeting(ctx, meeting)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	location, err := f.meetingService.ResolveLocation(ctx, updated)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve meeting location")
		location = updated.Location
	}

	if err := common.RespondWithEmbed(s, i, BuildMeetingEmbed(updated, location, common.ColorSuccess), false); err != nil {
		log.Errorf("Error responding to /tenidas editar: %v", err)
	}
}

func (f *Feature) handleTemples(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	temples, err := f.meetingService.ListTemples(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildTempleListEmbed(temples), false); err != nil {
		log.Errorf("Error responding to /tenidas templos: %v", err)
	}
}

func (f *Feature) handleConvocation(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring /convocatoria: %v", err)
		return
	}

	ctx := context.Background()
	meetingID, _ := options.Int("tenida")

	meeting, err := f.meetingService.GetMeeting(ctx, meetingID)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	venue, err := f.venueFor(ctx, meeting)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	var buf bytes.Buffer
	letter := export.ConvocationText(meeting, venue, f.lodge, f.now())
	if err := export.ConvocationPDF(&buf, letter); err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	file := &discordgo.File{
		Name:        export.ConvocationFileName(meeting),
		ContentType: "application/pdf",
		Reader:      &buf,
	}
	if err := common.FollowUpWithFile(s, i, "📜 Convocatoria para "+common.MeetingLabel(meeting), file); err != nil {
		log.Errorf("Error sending convocation: %v", err)
	}
}

// venueFor resolves where a meeting is held. Temples carry a street address,
// falling back to the configured one; free-text locations have none.
func (f *Feature) venueFor(ctx context.Context, meeting *models.Meeting) (export.Venue, error) {
	name, err := f.meetingService.ResolveLocation(ctx, meeting)
	if err != nil {
		return export.Venue{}, err
	}
	if name == meeting.Location {
		return export.Venue{Name: name}, nil
	}

	venue := export.Venue{Name: name, Address: f.templeAddress}

	temples, err := f.meetingService.ListTemples(ctx)
	if err != nil {
		return export.Venue{}, err
	}
	for _, temple := range temples {
		if strconv.FormatInt(temple.ID, 10) == strings.TrimSpace(meeting.Location) && temple.Address != nil && *temple.Address != "" {
			venue.Address = *temple.Address
		}
	}

	return venue, nil
}
