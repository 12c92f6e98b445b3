package service

import (
	"context"
	"fmt"
	"strings"

	"logia/events"
	"logia/models"
)

// attendanceService implements the AttendanceService interface
type attendanceService struct {
	uowFactory UnitOfWorkFactory
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(uowFactory UnitOfWorkFactory) AttendanceService {
	return &attendanceService{
		uowFactory: uowFactory,
	}
}

// RecordAttendance marks a brother present at a meeting. Recording the same
// pair again returns the existing record and publishes nothing.
func (s *attendanceService) RecordAttendance(ctx context.Context, meetingID, brotherID int64) (*models.Attendance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	meeting, err := uow.MeetingRepository().GetByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting == nil {
		return nil, fmt.Errorf("meeting %d: %w", meetingID, models.ErrMeetingNotFound)
	}

	brother, err := uow.BrotherRepository().GetByID(ctx, brotherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get brother: %w", err)
	}
	if brother == nil {
		return nil, fmt.Errorf("brother %d: %w", brotherID, models.ErrBrotherNotFound)
	}

	attendance, inserted, err := uow.AttendanceRepository().Record(ctx, brotherID, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}
	if !inserted {
		return attendance, nil
	}

	uow.EventBus().Publish(events.AttendanceRecordedEvent{
		AttendanceID: attendance.ID,
		BrotherID:    brotherID,
		MeetingID:    meetingID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return attendance, nil
}

// RemoveAttendance deletes an attendance record. Removing a missing record is a no-op.
func (s *attendanceService) RemoveAttendance(ctx context.Context, meetingID, brotherID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := uow.AttendanceRepository().Delete(ctx, brotherID, meetingID); err != nil {
		return fmt.Errorf("failed to remove attendance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListAttendees returns the brothers present at a meeting
func (s *attendanceService) ListAttendees(ctx context.Context, meetingID int64) ([]*models.AttendanceDetail, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	meeting, err := uow.MeetingRepository().GetByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting == nil {
		return nil, fmt.Errorf("meeting %d: %w", meetingID, models.ErrMeetingNotFound)
	}

	attendees, err := uow.AttendanceRepository().GetByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}

	return attendees, nil
}

// SuggestBrothers returns brothers whose name or cedula contains the query,
// ignoring case and accents. An empty query suggests nobody.
func (s *attendanceService) SuggestBrothers(ctx context.Context, query string) ([]*models.Brother, error) {
	needle := models.FoldLabel(query)
	if needle == "" {
		return []*models.Brother{}, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brothers, err := uow.BrotherRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get brothers: %w", err)
	}

	suggestions := make([]*models.Brother, 0)
	for _, brother := range brothers {
		if strings.Contains(models.FoldLabel(brother.Name), needle) ||
			(brother.Cedula != nil && strings.Contains(models.FoldLabel(*brother.Cedula), needle)) {
			suggestions = append(suggestions, brother)
		}
	}

	return suggestions, nil
}

// GetAttendanceReport summarizes the attendance of the brothers of a grade,
// or of every brother when grade is nil. Summaries are computed against all
// meetings and attendance records.
func (s *attendanceService) GetAttendanceReport(ctx context.Context, grade *models.Grade) (*models.AttendanceReport, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brothers, err := loadBrothers(ctx, uow, grade)
	if err != nil {
		return nil, err
	}

	meetings, err := uow.MeetingRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get meetings: %w", err)
	}

	attendances, err := uow.AttendanceRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances: %w", err)
	}

	summaries := SummarizeAll(brothers, meetings, attendances)

	return &models.AttendanceReport{
		Grade:     grade,
		Summaries: summaries,
		Averages:  Aggregate(summaries),
	}, nil
}

// GetBrotherSummary returns the attendance summary of one brother
func (s *attendanceService) GetBrotherSummary(ctx context.Context, brotherID int64) (*models.AttendanceSummary, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brother, err := uow.BrotherRepository().GetByID(ctx, brotherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get brother: %w", err)
	}
	if brother == nil {
		return nil, fmt.Errorf("brother %d: %w", brotherID, models.ErrBrotherNotFound)
	}

	meetings, err := uow.MeetingRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get meetings: %w", err)
	}

	attendances, err := uow.AttendanceRepository().GetByBrother(ctx, brotherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances: %w", err)
	}

	return Summarize(brother, meetings, attendances), nil
}
