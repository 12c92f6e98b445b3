package common

import (
	"errors"
	"fmt"

	"logia/importer"
	"logia/models"
	"logia/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GenericErrorMessage is shown when an error has no user-facing description
const GenericErrorMessage = "Algo salió mal. Intenta de nuevo más tarde."

// UserMessage returns the message shown to the user for an error
func UserMessage(err error) string {
	if message, ok := service.ValidationMessage(err); ok {
		return "Datos inválidos: " + message
	}

	switch {
	case errors.Is(err, models.ErrBrotherNotFound):
		return "Hermano no encontrado."
	case errors.Is(err, models.ErrMeetingNotFound):
		return "Tenida no encontrada."
	case errors.Is(err, models.ErrPositionNotFound):
		return "Cargo no encontrado."
	case errors.Is(err, models.ErrInvalidGrade):
		return "Grado inválido. Usa Aprendiz, Compañero o Maestro."
	case errors.Is(err, models.ErrInvalidMeetingType):
		return "Tipo de tenida inválido. Usa Ordinaria, Extraordinaria o Conjunta."
	case errors.Is(err, models.ErrSearchTooShort):
		return fmt.Sprintf("La búsqueda debe tener al menos %d caracteres.", service.MinSearchLength)
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return "Formato no soportado. Sube un archivo .csv o .xlsx."
	case errors.Is(err, importer.ErrMissingNameColumn):
		return "El archivo no tiene una columna \"nombre\"."
	default:
		return GenericErrorMessage
	}
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs a service error and tells the user what went wrong
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	message := UserMessage(err)

	fields := log.Fields{
		"command": i.ApplicationCommandData().Name,
		"error":   err.Error(),
	}
	if i.Member != nil && i.Member.User != nil {
		fields["user_id"] = i.Member.User.ID
	}
	if message == GenericErrorMessage {
		log.WithFields(fields).Error("Unexpected error in bot command")
	} else {
		log.WithFields(fields).Debug("Command rejected")
	}

	if deferred {
		FollowUpWithError(s, i, message)
	} else {
		RespondWithError(s, i, message)
	}
}
