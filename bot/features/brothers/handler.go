package brothers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"logia/bot/common"
	"logia/importer"
	"logia/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// maxImportSize caps the roster files accepted by /hermanos importar
const maxImportSize = 5 << 20

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()

	grade, err := options.Grade("grado")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	search := options.String("buscar")

	brothers, err := f.brotherService.ListBrothers(ctx, grade, search)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildBrotherListEmbed(brothers, grade, search), false); err != nil {
		log.Errorf("Error responding to /hermanos listar: %v", err)
	}
}

func (f *Feature) handleGrades(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	distribution, err := f.brotherService.GetGradeDistribution(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildGradeDistributionEmbed(distribution), false); err != nil {
		log.Errorf("Error responding to /hermanos grados: %v", err)
	}
}

func (f *Feature) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()

	brotherID, _ := options.Int("hermano")
	grade, err := models.ParseGrade(options.String("grado"))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	brother, err := f.brotherService.GetBrother(ctx, brotherID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	// Without a new position the brother keeps the one they hold
	positionID := brother.PositionID
	if id, ok := options.Int("cargo"); ok {
		positionID = &id
	}
	if options.Bool("sin_cargo") {
		positionID = nil
	}

	updated, err := f.brotherService.UpdateBrother(ctx, brotherID, grade, positionID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"brother_id":  updated.ID,
		"grade":       updated.Grade,
		"position_id": updated.PositionID,
	}).Info("Brother updated from Discord")

	if err := common.RespondWithEmbed(s, i, BuildBrotherEmbed(updated), false); err != nil {
		log.Errorf("Error responding to /hermanos editar: %v", err)
	}
}

func (f *Feature) handleImport(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	data := i.ApplicationCommandData()

	// Attachment options carry the attachment ID; the file itself is in Resolved
	var attachment *discordgo.MessageAttachment
	if opt, ok := options["archivo"]; ok && data.Resolved != nil {
		if attachmentID, ok := opt.Value.(string); ok {
			attachment = data.Resolved.Attachments[attachmentID]
		}
	}
	if attachment == nil {
		common.RespondWithError(s, i, "No se recibió ningún archivo.")
		return
	}
	if attachment.Size > maxImportSize {
		common.RespondWithError(s, i, "El archivo es demasiado grande (máximo 5 MB).")
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring /hermanos importar: %v", err)
		return
	}

	ctx := context.Background()
	rows, err := f.downloadRoster(ctx, attachment)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	created, err := f.brotherService.ImportBrothers(ctx, rows)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	log.WithFields(log.Fields{
		"file":    attachment.Filename,
		"created": created,
	}).Info("Brothers imported from Discord")

	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Se importaron %d hermanos desde %s.", created, attachment.Filename), false)
}

// downloadRoster fetches an attachment and parses it as a brother roster
func (f *Feature) downloadRoster(ctx context.Context, attachment *discordgo.MessageAttachment) ([]models.ImportRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attachment.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", attachment.Filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: status %d", attachment.Filename, resp.StatusCode)
	}

	return importer.ParseBrothers(attachment.Filename, io.LimitReader(resp.Body, maxImportSize))
}
