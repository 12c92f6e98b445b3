package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logia/database"
	"logia/models"

	"github.com/jackc/pgx/v5"
)

// PositionRepository implements the PositionRepository interface
type PositionRepository struct {
	q queryable
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *database.DB) *PositionRepository {
	return &PositionRepository{q: db.Pool}
}

// newPositionRepositoryWithTx creates a new position repository with a transaction
func newPositionRepositoryWithTx(tx queryable) *PositionRepository {
	return &PositionRepository{q: tx}
}

// GetAll returns all positions ordered by name
func (r *PositionRepository) GetAll(ctx context.Context) ([]*models.Position, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM positions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		var position models.Position
		if err := rows.Scan(&position.ID, &position.Name); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, &position)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}

	return positions, nil
}

// GetByID retrieves a position by ID
func (r *PositionRepository) GetByID(ctx context.Context, id int64) (*models.Position, error) {
	var position models.Position
	err := r.q.QueryRow(ctx, `SELECT id, name FROM positions WHERE id = $1`, id).Scan(&position.ID, &position.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position %d: %w", id, err)
	}
	return &position, nil
}

// GetByName retrieves a position by name, ignoring case and surrounding spaces
func (r *PositionRepository) GetByName(ctx context.Context, name string) (*models.Position, error) {
	query := `SELECT id, name FROM positions WHERE lower(name) = lower(trim($1))`

	var position models.Position
	err := r.q.QueryRow(ctx, query, name).Scan(&position.ID, &position.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position %q: %w", name, err)
	}
	return &position, nil
}

// GetHolders returns every position with its current holder
func (r *PositionRepository) GetHolders(ctx context.Context) ([]*models.PositionHolder, error) {
	query := `
		SELECT
			p.id, p.name,
			b.id, b.name, b.cedula, b.grade, b.created_at, b.updated_at
		FROM positions p
		LEFT JOIN brothers b ON b.position_id = p.id
		ORDER BY p.id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get position holders: %w", err)
	}
	defer rows.Close()

	var holders []*models.PositionHolder
	for rows.Next() {
		var position models.Position
		var (
			brotherID        *int64
			brotherName      *string
			brotherCedula    *string
			brotherGrade     *string
			brotherCreatedAt *time.Time
			brotherUpdatedAt *time.Time
		)
		err := rows.Scan(
			&position.ID,
			&position.Name,
			&brotherID,
			&brotherName,
			&brotherCedula,
			&brotherGrade,
			&brotherCreatedAt,
			&brotherUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position holder: %w", err)
		}

		holder := &models.PositionHolder{Position: &position}
		if brotherID != nil {
			positionID := position.ID
			positionName := position.Name
			holder.Brother = &models.Brother{
				ID:           *brotherID,
				Name:         *brotherName,
				Cedula:       brotherCedula,
				Grade:        models.Grade(*brotherGrade),
				PositionID:   &positionID,
				PositionName: &positionName,
				CreatedAt:    *brotherCreatedAt,
				UpdatedAt:    *brotherUpdatedAt,
			}
		}
		holders = append(holders, holder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate position holders: %w", err)
	}

	return holders, nil
}

// OpenHistory starts a history entry for a new holder
func (r *PositionRepository) OpenHistory(ctx context.Context, positionID, brotherID int64, start time.Time) error {
	query := `
		INSERT INTO position_history (position_id, brother_id, start_date)
		VALUES ($1, $2, $3::date)
	`

	if _, err := r.q.Exec(ctx, query, positionID, brotherID, start); err != nil {
		return fmt.Errorf("failed to open history of position %d for brother %d: %w", positionID, brotherID, err)
	}
	return nil
}

// CloseHistory ends the open history entries of a position
func (r *PositionRepository) CloseHistory(ctx context.Context, positionID int64, end time.Time) error {
	query := `
		UPDATE position_history
		SET end_date = $2::date
		WHERE position_id = $1 AND end_date IS NULL
	`

	if _, err := r.q.Exec(ctx, query, positionID, end); err != nil {
		return fmt.Errorf("failed to close history of position %d: %w", positionID, err)
	}
	return nil
}

// GetHistory returns the tenures of a position, newest first
func (r *PositionRepository) GetHistory(ctx context.Context, positionID int64) ([]*models.PositionHistoryEntry, error) {
	query := `
		SELECT h.id, h.position_id, h.brother_id, b.name, h.start_date, h.end_date
		FROM position_history h
		JOIN brothers b ON b.id = h.brother_id
		WHERE h.position_id = $1
		ORDER BY h.start_date DESC, h.id DESC
	`

	rows, err := r.q.Query(ctx, query, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history of position %d: %w", positionID, err)
	}
	defer rows.Close()

	var history []*models.PositionHistoryEntry
	for rows.Next() {
		var entry models.PositionHistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.PositionID,
			&entry.BrotherID,
			&entry.BrotherName,
			&entry.StartDate,
			&entry.EndDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position history: %w", err)
		}
		history = append(history, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate position history: %w", err)
	}

	return history, nil
}
