package meetings

import (
	"context"
	"strconv"
	"testing"
	"time"

	"logia/bot/common"
	"logia/export"
	"logia/models"
	"logia/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMeetingService answers only the calls the convocation needs
type fakeMeetingService struct {
	service.MeetingService
	temples []*models.Temple
}

func (f *fakeMeetingService) ListTemples(ctx context.Context) ([]*models.Temple, error) {
	return f.temples, nil
}

func (f *fakeMeetingService) ResolveLocation(ctx context.Context, meeting *models.Meeting) (string, error) {
	for _, temple := range f.temples {
		if meeting.Location == strconv.FormatInt(temple.ID, 10) {
			return service.TempleLabel(temple), nil
		}
	}
	return meeting.Location, nil
}

func stringPtr(s string) *string {
	return &s
}

func TestParseMeetingDate(t *testing.T) {
	expected := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2026-11-05", "05/11/2026", "5/11/2026", " 2026-11-05 "} {
		t.Run(input, func(t *testing.T) {
			date, err := ParseMeetingDate(input)
			require.NoError(t, err)
			assert.Equal(t, expected, date)
		})
	}

	_, err := ParseMeetingDate("mañana")
	assert.Error(t, err)
}

func TestApplyMeetingOptions(t *testing.T) {
	meeting := &models.Meeting{
		Theme:    "Tema anterior",
		Location: "Casa del Venerable",
		Type:     models.MeetingTypeOrdinary,
		Grade:    models.GradeApprentice,
	}

	options := common.NewOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "fecha", Type: discordgo.ApplicationCommandOptionString, Value: "03/12/2026"},
		{Name: "grado", Type: discordgo.ApplicationCommandOptionString, Value: "Maestro"},
		{Name: "lugar", Type: discordgo.ApplicationCommandOptionString, Value: "ignorado"},
		{Name: "templo", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(2)},
	})

	require.NoError(t, applyMeetingOptions(meeting, options))
	assert.Equal(t, "Tema anterior", meeting.Theme)
	assert.Equal(t, time.Date(2026, 12, 3, 0, 0, 0, 0, time.UTC), meeting.Date)
	assert.Equal(t, models.MeetingTypeOrdinary, meeting.Type)
	assert.Equal(t, models.GradeMaster, meeting.Grade)
	assert.Equal(t, "2", meeting.Location)
}

func TestApplyMeetingOptions_InvalidDate(t *testing.T) {
	options := common.NewOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "fecha", Type: discordgo.ApplicationCommandOptionString, Value: "2026-13-45"},
	})

	assert.ErrorIs(t, applyMeetingOptions(&models.Meeting{}, options), errInvalidDate)
}

func TestVenueFor(t *testing.T) {
	meetings := &fakeMeetingService{temples: []*models.Temple{
		{ID: 1, Name: "Templo Central"},
		{ID: 2, Name: "Templo Masónico de Valencia", Address: stringPtr("Av. Bolívar 12")},
	}}
	feature := NewFeature(meetings, export.Lodge{}, "Calle 5 con Av. 3")
	ctx := context.Background()

	tests := []struct {
		name     string
		location string
		expected export.Venue
	}{
		{"temple with address", "2", export.Venue{Name: "Templo Masónico de Valencia N°2", Address: "Av. Bolívar 12"}},
		{"temple without address", "1", export.Venue{Name: "Templo Central N°1", Address: "Calle 5 con Av. 3"}},
		{"free text", "Casa del Venerable", export.Venue{Name: "Casa del Venerable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venue, err := feature.venueFor(ctx, &models.Meeting{Location: tt.location})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, venue)
		})
	}
}

func TestBuildMeetingListEmbed_CapsFields(t *testing.T) {
	meetings := make([]*models.Meeting, 30)
	for idx := range meetings {
		meetings[idx] = &models.Meeting{ID: int64(idx + 1), Theme: "Tenida", Date: time.Date(2026, 1, idx+1, 0, 0, 0, 0, time.UTC)}
	}

	embed := BuildMeetingListEmbed("Tenidas", meetings)
	assert.Len(t, embed.Fields, common.MaxEmbedFields)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Mostrando 25 de 30 tenidas", embed.Footer.Text)

	empty := BuildMeetingListEmbed("Tenidas", nil)
	assert.Equal(t, "No hay tenidas.", empty.Description)
}
