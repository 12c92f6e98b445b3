package service

import (
	"context"
	"fmt"
	"time"

	"logia/events"
	"logia/models"
)

// positionService implements the PositionService interface
type positionService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewPositionService creates a new position service
func NewPositionService(uowFactory UnitOfWorkFactory) PositionService {
	return &positionService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// GetBoard returns every position with its current holder
func (s *positionService) GetBoard(ctx context.Context) ([]*models.PositionHolder, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	holders, err := uow.PositionRepository().GetHolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get position board: %w", err)
	}

	return holders, nil
}

// AssignPosition gives a position to a brother, replacing the previous holder.
// A nil brotherID leaves the position vacant.
func (s *positionService) AssignPosition(ctx context.Context, positionID int64, brotherID *int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := reassignPosition(ctx, uow, positionID, brotherID, s.now()); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetHistory returns the tenures of a position, newest first. A position whose
// holder predates the history table is reported as a single open tenure
// starting today.
func (s *positionService) GetHistory(ctx context.Context, positionID int64) ([]*models.PositionHistoryEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	position, err := uow.PositionRepository().GetByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	if position == nil {
		return nil, fmt.Errorf("position %d: %w", positionID, models.ErrPositionNotFound)
	}

	history, err := uow.PositionRepository().GetHistory(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position history: %w", err)
	}
	if len(history) > 0 {
		return history, nil
	}

	holder, err := uow.BrotherRepository().GetByPosition(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position holder: %w", err)
	}
	if holder == nil {
		return []*models.PositionHistoryEntry{}, nil
	}

	return []*models.PositionHistoryEntry{{
		PositionID:  positionID,
		BrotherID:   holder.ID,
		BrotherName: holder.Name,
		StartDate:   startOfDay(s.now()),
	}}, nil
}

// reassignPosition moves a position to a brother inside an open unit of work.
// The previous holder loses it and their tenure is closed. If the new holder
// held another position, that one is vacated. Returns the previous holder's ID.
func reassignPosition(ctx context.Context, uow UnitOfWork, positionID int64, brotherID *int64, now time.Time) (*int64, error) {
	position, err := uow.PositionRepository().GetByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	if position == nil {
		return nil, fmt.Errorf("position %d: %w", positionID, models.ErrPositionNotFound)
	}

	previous, err := uow.BrotherRepository().GetByPosition(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position holder: %w", err)
	}

	var previousID *int64
	if previous != nil {
		if brotherID != nil && previous.ID == *brotherID {
			return &previous.ID, nil
		}
		previousID = &previous.ID
	}

	var brother *models.Brother
	if brotherID != nil {
		brother, err = uow.BrotherRepository().GetByID(ctx, *brotherID)
		if err != nil {
			return nil, fmt.Errorf("failed to get brother: %w", err)
		}
		if brother == nil {
			return nil, fmt.Errorf("brother %d: %w", *brotherID, models.ErrBrotherNotFound)
		}
	}

	if previous != nil {
		if err := uow.BrotherRepository().ClearPosition(ctx, positionID); err != nil {
			return nil, fmt.Errorf("failed to clear previous holder: %w", err)
		}
		if err := uow.PositionRepository().CloseHistory(ctx, positionID, now); err != nil {
			return nil, fmt.Errorf("failed to close position history: %w", err)
		}
	}

	if brother != nil {
		if brother.PositionID != nil && *brother.PositionID != positionID {
			if err := vacatePosition(ctx, uow, *brother.PositionID, brother.ID, now); err != nil {
				return nil, err
			}
		}
		if err := uow.BrotherRepository().UpdateGradeAndPosition(ctx, brother.ID, brother.Grade, &positionID); err != nil {
			return nil, fmt.Errorf("failed to assign position: %w", err)
		}
		if err := uow.PositionRepository().OpenHistory(ctx, positionID, brother.ID, now); err != nil {
			return nil, fmt.Errorf("failed to open position history: %w", err)
		}
	}

	uow.EventBus().Publish(events.PositionAssignedEvent{
		PositionID:        positionID,
		PositionName:      position.Name,
		BrotherID:         brotherID,
		PreviousBrotherID: previousID,
	})

	return previousID, nil
}

// vacatePosition removes a position from its holder and closes the tenure
func vacatePosition(ctx context.Context, uow UnitOfWork, positionID, holderID int64, now time.Time) error {
	position, err := uow.PositionRepository().GetByID(ctx, positionID)
	if err != nil {
		return fmt.Errorf("failed to get position: %w", err)
	}
	if position == nil {
		return fmt.Errorf("position %d: %w", positionID, models.ErrPositionNotFound)
	}

	if err := uow.BrotherRepository().ClearPosition(ctx, positionID); err != nil {
		return fmt.Errorf("failed to clear position %d: %w", positionID, err)
	}
	if err := uow.PositionRepository().CloseHistory(ctx, positionID, now); err != nil {
		return fmt.Errorf("failed to close position history: %w", err)
	}

	uow.EventBus().Publish(events.PositionAssignedEvent{
		PositionID:        positionID,
		PositionName:      position.Name,
		PreviousBrotherID: &holderID,
	})
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
