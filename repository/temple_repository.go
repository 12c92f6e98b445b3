package repository

import (
	"context"
	"errors"
	"fmt"

	"logia/database"
	"logia/models"

	"github.com/jackc/pgx/v5"
)

// TempleRepository implements the TempleRepository interface
type TempleRepository struct {
	q queryable
}

// NewTempleRepository creates a new temple repository
func NewTempleRepository(db *database.DB) *TempleRepository {
	return &TempleRepository{q: db.Pool}
}

func newTempleRepositoryWithTx(tx queryable) *TempleRepository {
	return &TempleRepository{q: tx}
}

// GetAll returns all temples ordered by name
func (r *TempleRepository) GetAll(ctx context.Context) ([]*models.Temple, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, address FROM temples ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get temples: %w", err)
	}
	defer rows.Close()

	var temples []*models.Temple
	for rows.Next() {
		var temple models.Temple
		if err := rows.Scan(&temple.ID, &temple.Name, &temple.Address); err != nil {
			return nil, fmt.Errorf("failed to scan temple: %w", err)
		}
		temples = append(temples, &temple)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate temples: %w", err)
	}

	return temples, nil
}

// GetByID retrieves a temple by ID
func (r *TempleRepository) GetByID(ctx context.Context, id int64) (*models.Temple, error) {
	var temple models.Temple
	err := r.q.QueryRow(ctx, `SELECT id, name, address FROM temples WHERE id = $1`, id).
		Scan(&temple.ID, &temple.Name, &temple.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get temple %d: %w", id, err)
	}
	return &temple, nil
}
