package positions

import (
	"context"
	"fmt"

	"logia/bot/common"
	"logia/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBoard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	board, err := f.positionService.GetBoard(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildBoardEmbed(board), false); err != nil {
		log.Errorf("Error responding to /cuadro: %v", err)
	}
}

func (f *Feature) handleAssign(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	positionID, _ := options.Int("cargo")

	var brotherID *int64
	if id, ok := options.Int("hermano"); ok {
		brotherID = &id
	}

	if err := f.positionService.AssignPosition(ctx, positionID, brotherID); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	board, err := f.positionService.GetBoard(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	holder := findHolder(board, positionID)
	message := "Cargo actualizado."
	if holder != nil {
		message = AssignmentMessage(holder)
	}

	log.WithFields(log.Fields{
		"position_id": positionID,
		"brother_id":  brotherID,
	}).Info("Position assigned from Discord")

	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to /cargo asignar: %v", err)
	}
}

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	ctx := context.Background()
	positionID, _ := options.Int("cargo")

	history, err := f.positionService.GetHistory(ctx, positionID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	board, err := f.positionService.GetBoard(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	name := fmt.Sprintf("Cargo #%d", positionID)
	if holder := findHolder(board, positionID); holder != nil {
		name = holder.Position.Name
	}

	if err := common.RespondWithEmbed(s, i, BuildHistoryEmbed(name, history), false); err != nil {
		log.Errorf("Error responding to /cargo historial: %v", err)
	}
}

func findHolder(board []*models.PositionHolder, positionID int64) *models.PositionHolder {
	for _, holder := range board {
		if holder.Position.ID == positionID {
			return holder
		}
	}
	return nil
}
