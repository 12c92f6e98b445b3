package repository

import (
	"context"
	"errors"
	"fmt"

	"logia/database"
	"logia/models"

	"github.com/jackc/pgx/v5"
)

// AttendanceRepository implements the AttendanceRepository interface
type AttendanceRepository struct {
	q queryable
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{q: db.Pool}
}

// newAttendanceRepositoryWithTx creates a new attendance repository with a transaction
func newAttendanceRepositoryWithTx(tx queryable) *AttendanceRepository {
	return &AttendanceRepository{q: tx}
}

// Record inserts an attendance. An existing (brother, meeting) pair is left
// untouched and returned with inserted set to false.
func (r *AttendanceRepository) Record(ctx context.Context, brotherID, meetingID int64) (*models.Attendance, bool, error) {
	insert := `
		INSERT INTO attendances (brother_id, meeting_id)
		VALUES ($1, $2)
		ON CONFLICT (brother_id, meeting_id) DO NOTHING
		RETURNING id, brother_id, meeting_id, created_at
	`

	var attendance models.Attendance
	err := r.q.QueryRow(ctx, insert, brotherID, meetingID).Scan(
		&attendance.ID,
		&attendance.BrotherID,
		&attendance.MeetingID,
		&attendance.CreatedAt,
	)
	if err == nil {
		return &attendance, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to record attendance of brother %d at meeting %d: %w", brotherID, meetingID, err)
	}

	existing := `
		SELECT id, brother_id, meeting_id, created_at
		FROM attendances
		WHERE brother_id = $1 AND meeting_id = $2
	`
	err = r.q.QueryRow(ctx, existing, brotherID, meetingID).Scan(
		&attendance.ID,
		&attendance.BrotherID,
		&attendance.MeetingID,
		&attendance.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get existing attendance of brother %d at meeting %d: %w", brotherID, meetingID, err)
	}

	return &attendance, false, nil
}

func (r *AttendanceRepository) queryAttendances(ctx context.Context, query string, args ...any) ([]*models.Attendance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendances []*models.Attendance
	for rows.Next() {
		var attendance models.Attendance
		err := rows.Scan(
			&attendance.ID,
			&attendance.BrotherID,
			&attendance.MeetingID,
			&attendance.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, &attendance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, nil
}

// GetAll returns every attendance record
func (r *AttendanceRepository) GetAll(ctx context.Context) ([]*models.Attendance, error) {
	query := `SELECT id, brother_id, meeting_id, created_at FROM attendances ORDER BY id`

	attendances, err := r.queryAttendances(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances: %w", err)
	}
	return attendances, nil
}

// GetByBrother returns the attendance records of one brother
func (r *AttendanceRepository) GetByBrother(ctx context.Context, brotherID int64) ([]*models.Attendance, error) {
	query := `
		SELECT id, brother_id, meeting_id, created_at
		FROM attendances
		WHERE brother_id = $1
		ORDER BY id
	`

	attendances, err := r.queryAttendances(ctx, query, brotherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances of brother %d: %w", brotherID, err)
	}
	return attendances, nil
}

// GetByMeeting returns the attendances of a meeting joined with the brothers, ordered by name
func (r *AttendanceRepository) GetByMeeting(ctx context.Context, meetingID int64) ([]*models.AttendanceDetail, error) {
	query := `
		SELECT
			a.id, a.brother_id, a.meeting_id, a.created_at,
			` + brotherColumns + `
		FROM attendances a
		JOIN brothers b ON b.id = a.brother_id
		LEFT JOIN positions p ON p.id = b.position_id
		WHERE a.meeting_id = $1
		ORDER BY b.name, b.id
	`

	rows, err := r.q.Query(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances of meeting %d: %w", meetingID, err)
	}
	defer rows.Close()

	var details []*models.AttendanceDetail
	for rows.Next() {
		var attendance models.Attendance
		var brother models.Brother
		err := rows.Scan(
			&attendance.ID,
			&attendance.BrotherID,
			&attendance.MeetingID,
			&attendance.CreatedAt,
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
			return nil, fmt.Errorf("failed to scan attendance detail: %w", err)
		}
		details = append(details, &models.AttendanceDetail{Attendance: &attendance, Brother: &brother})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance details: %w", err)
	}

	return details, nil
}

// Delete removes an attendance, reporting whether a row existed
func (r *AttendanceRepository) Delete(ctx context.Context, brotherID, meetingID int64) (bool, error) {
	query := `DELETE FROM attendances WHERE brother_id = $1 AND meeting_id = $2`

	result, err := r.q.Exec(ctx, query, brotherID, meetingID)
	if err != nil {
		return false, fmt.Errorf("failed to delete attendance of brother %d at meeting %d: %w", brotherID, meetingID, err)
	}

	return result.RowsAffected() > 0, nil
}
