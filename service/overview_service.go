package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"logia/models"
)

const (
	// MinSearchLength is the shortest query the global search accepts
	MinSearchLength = 2
	// SearchLimit caps the results of each kind returned by the global search
	SearchLimit = 5
)

// overviewService implements the OverviewService interface
type overviewService struct {
	uowFactory    UnitOfWorkFactory
	upcomingLimit int
	now           func() time.Time
}

// NewOverviewService creates a new overview service
func NewOverviewService(uowFactory UnitOfWorkFactory, upcomingLimit int) OverviewService {
	if upcomingLimit <= 0 {
		upcomingLimit = DefaultUpcomingLimit
	}
	return &overviewService{
		uowFactory:    uowFactory,
		upcomingLimit: upcomingLimit,
		now:           time.Now,
	}
}

// GetOverview returns the dashboard summary of the lodge
func (s *overviewService) GetOverview(ctx context.Context) (*models.Overview, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brothers, err := uow.BrotherRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get brothers: %w", err)
	}

	meetings, err := uow.MeetingRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get meetings: %w", err)
	}

	attendances, err := uow.AttendanceRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances: %w", err)
	}

	upcoming, err := uow.MeetingRepository().GetUpcoming(ctx, startOfDay(s.now()), s.upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming meetings: %w", err)
	}

	averages := Aggregate(SummarizeAll(brothers, meetings, attendances))

	return &models.Overview{
		TotalBrothers:     len(brothers),
		TotalMeetings:     len(meetings),
		AverageAttendance: averages.AverageOverallRate,
		GradeDistribution: GradeDistribution(brothers),
		UpcomingMeetings:  upcoming,
	}, nil
}

// Search finds brothers by name or cedula and meetings by theme
func (s *overviewService) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil, models.ErrSearchTooShort
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brothers, err := uow.BrotherRepository().Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search brothers: %w", err)
	}

	meetings, err := uow.MeetingRepository().Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search meetings: %w", err)
	}

	return &models.SearchResults{
		Brothers: brothers,
		Meetings: meetings,
	}, nil
}
