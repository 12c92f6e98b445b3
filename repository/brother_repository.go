package repository

import (
	"context"
	"errors"
	"fmt"

	"logia/database"
	"logia/models"

	"github.com/jackc/pgx/v5"
)

// BrotherRepository implements the BrotherRepository interface
type BrotherRepository struct {
	q queryable
}

// NewBrotherRepository creates a new brother repository
func NewBrotherRepository(db *database.DB) *BrotherRepository {
	return &BrotherRepository{q: db.Pool}
}

// newBrotherRepositoryWithTx creates a new brother repository with a transaction
func newBrotherRepositoryWithTx(tx queryable) *BrotherRepository {
	return &BrotherRepository{q: tx}
}

const brotherColumns = `
	b.id,
	b.name,
	b.cedula,
	b.grade,
	b.position_id,
	p.name,
	b.created_at,
	b.updated_at
`

const brotherFrom = `
	FROM brothers b
	LEFT JOIN positions p ON p.id = b.position_id
`

func scanBrother(row pgx.Row) (*models.Brother, error) {
	var brother models.Brother
	err := row.Scan(
		&brother.ID,
		&brother.Name,
		&brother.Cedula,
		&brother.Grade,
		&brother.PositionID,
		&brother.PositionName,
		&brother.CreatedAt,
		&brother.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &brother, nil
}

func (r *BrotherRepository) queryBrothers(ctx context.Context, query string, args ...any) ([]*models.Brother, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brothers []*models.Brother
	for rows.Next() {
		brother, err := scanBrother(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brother: %w", err)
		}
		brothers = append(brothers, brother)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brothers: %w", err)
	}

	return brothers, nil
}

// GetByID retrieves a brother by ID
func (r *BrotherRepository) GetByID(ctx context.Context, id int64) (*models.Brother, error) {
	query := `SELECT ` + brotherColumns + brotherFrom + ` WHERE b.id = $1`

	brother, err := scanBrother(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brother %d: %w", id, err)
	}

	return brother, nil
}

// GetAll returns all brothers ordered by name
func (r *BrotherRepository) GetAll(ctx context.Context) ([]*models.Brother, error) {
	query := `SELECT ` + brotherColumns + brotherFrom + ` ORDER BY b.name, b.id`

	brothers, err := r.queryBrothers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get brothers: %w", err)
	}
	return brothers, nil
}

// GetByGrade returns the brothers of one grade ordered by name
func (r *BrotherRepository) GetByGrade(ctx context.Context, grade models.Grade) ([]*models.Brother, error) {
	query := `SELECT ` + brotherColumns + brotherFrom + ` WHERE b.grade = $1 ORDER BY b.name, b.id`

	brothers, err := r.queryBrothers(ctx, query, grade)
	if err != nil {
		return nil, fmt.Errorf("failed to get brothers with grade %s: %w", grade, err)
	}
	return brothers, nil
}

// GetByPosition returns the brother holding a position
func (r *BrotherRepository) GetByPosition(ctx context.Context, positionID int64) (*models.Brother, error) {
	query := `SELECT ` + brotherColumns + brotherFrom + ` WHERE b.position_id = $1`

	brother, err := scanBrother(r.q.QueryRow(ctx, query, positionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holder of position %d: %w", positionID, err)
	}

	return brother, nil
}

// Search returns brothers whose name or cedula contains the query
func (r *BrotherRepository) Search(ctx context.Context, query string, limit int) ([]*models.Brother, error) {
	sql := `SELECT ` + brotherColumns + brotherFrom + `
		WHERE b.name ILIKE $1 OR b.cedula ILIKE $1
		ORDER BY b.name, b.id
		LIMIT $2
	`

	brothers, err := r.queryBrothers(ctx, sql, containsPattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search brothers: %w", err)
	}
	return brothers, nil
}

const insertBrotherQuery = `
	INSERT INTO brothers (name, cedula, grade, position_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
`

// Create inserts a brother
func (r *BrotherRepository) Create(ctx context.Context, brother *models.Brother) error {
	err := r.q.QueryRow(ctx, insertBrotherQuery,
		brother.Name,
		brother.Cedula,
		brother.Grade,
		brother.PositionID,
	).Scan(&brother.ID, &brother.CreatedAt, &brother.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create brother %q: %w", brother.Name, err)
	}
	return nil
}

// CreateMany inserts brothers in a single batch
func (r *BrotherRepository) CreateMany(ctx context.Context, brothers []*models.Brother) error {
	if len(brothers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, brother := range brothers {
		batch.Queue(insertBrotherQuery, brother.Name, brother.Cedula, brother.Grade, brother.PositionID)
	}

	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for _, brother := range brothers {
		err := results.QueryRow().Scan(&brother.ID, &brother.CreatedAt, &brother.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create brother %q: %w", brother.Name, err)
		}
	}

	return nil
}

// UpdateGradeAndPosition sets a brother's grade and position
func (r *BrotherRepository) UpdateGradeAndPosition(ctx context.Context, id int64, grade models.Grade, positionID *int64) error {
	query := `
		UPDATE brothers
		SET grade = $1, position_id = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, grade, positionID, id)
	if err != nil {
		return fmt.Errorf("failed to update brother %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("brother %d: %w", id, models.ErrBrotherNotFound)
	}

	return nil
}

// ClearPosition removes a position from whichever brother holds it
func (r *BrotherRepository) ClearPosition(ctx context.Context, positionID int64) error {
	query := `
		UPDATE brothers
		SET position_id = NULL, updated_at = NOW()
		WHERE position_id = $1
	`

	if _, err := r.q.Exec(ctx, query, positionID); err != nil {
		return fmt.Errorf("failed to clear position %d: %w", positionID, err)
	}
	return nil
}
