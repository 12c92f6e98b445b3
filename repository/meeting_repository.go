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

// MeetingRepository implements the MeetingRepository interface
type MeetingRepository struct {
	q queryable
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *database.DB) *MeetingRepository {
	return &MeetingRepository{q: db.Pool}
}

// newMeetingRepositoryWithTx creates a new meeting repository with a transaction
func newMeetingRepositoryWithTx(tx queryable) *MeetingRepository {
	return &MeetingRepository{q: tx}
}

const meetingColumns = `id, theme, date, location, type, grade, created_at`

func scanMeeting(row pgx.Row) (*models.Meeting, error) {
	var meeting models.Meeting
	err := row.Scan(
		&meeting.ID,
		&meeting.Theme,
		&meeting.Date,
		&meeting.Location,
		&meeting.Type,
		&meeting.Grade,
		&meeting.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) queryMeetings(ctx context.Context, query string, args ...any) ([]*models.Meeting, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []*models.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meetings: %w", err)
	}

	return meetings, nil
}

// GetByID retrieves a meeting by ID
func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*models.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	meeting, err := scanMeeting(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting %d: %w", id, err)
	}

	return meeting, nil
}

// GetAll returns all meetings, most recent first
func (r *MeetingRepository) GetAll(ctx context.Context) ([]*models.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings ORDER BY date DESC, id DESC`

	meetings, err := r.queryMeetings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get meetings: %w", err)
	}
	return meetings, nil
}

// GetUpcoming returns meetings dated strictly after the given day, soonest first
func (r *MeetingRepository) GetUpcoming(ctx context.Context, after time.Time, limit int) ([]*models.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE date > $1::date
		ORDER BY date ASC, id ASC
		LIMIT $2
	`

	meetings, err := r.queryMeetings(ctx, query, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming meetings: %w", err)
	}
	return meetings, nil
}

// Search returns meetings whose theme contains the query
func (r *MeetingRepository) Search(ctx context.Context, query string, limit int) ([]*models.Meeting, error) {
	sql := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE theme ILIKE $1
		ORDER BY date DESC, id DESC
		LIMIT $2
	`

	meetings, err := r.queryMeetings(ctx, sql, containsPattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search meetings: %w", err)
	}
	return meetings, nil
}

// Create inserts a meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	query := `
		INSERT INTO meetings (theme, date, location, type, grade)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		meeting.Theme,
		meeting.Date,
		meeting.Location,
		meeting.Type,
		meeting.Grade,
	).Scan(&meeting.ID, &meeting.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}

	return nil
}

// Update overwrites the editable fields of a meeting
func (r *MeetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	query := `
		UPDATE meetings
		SET theme = $1, date = $2, location = $3, type = $4, grade = $5
		WHERE id = $6
	`

	result, err := r.q.Exec(ctx, query,
		meeting.Theme,
		meeting.Date,
		meeting.Location,
		meeting.Type,
		meeting.Grade,
		meeting.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meeting %d: %w", meeting.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("meeting %d: %w", meeting.ID, models.ErrMeetingNotFound)
	}

	return nil
}
