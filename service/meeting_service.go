package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"logia/events"
	"logia/models"
)

// DefaultUpcomingLimit is the number of upcoming meetings shown when no limit is given
const DefaultUpcomingLimit = 3

// meetingService implements the MeetingService interface
type meetingService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewMeetingService creates a new meeting service
func NewMeetingService(uowFactory UnitOfWorkFactory) MeetingService {
	return &meetingService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// normalizeMeeting trims the text fields and drops the time of day from the date
func normalizeMeeting(meeting *models.Meeting) {
	meeting.Theme = strings.TrimSpace(meeting.Theme)
	meeting.Location = strings.TrimSpace(meeting.Location)
	if !meeting.Date.IsZero() {
		meeting.Date = startOfDay(meeting.Date)
	}
}

// CreateMeeting schedules a new meeting. Every field is required.
func (s *meetingService) CreateMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error) {
	normalizeMeeting(meeting)
	if err := validateStruct(meeting); err != nil {
		return nil, fmt.Errorf("invalid meeting: %w", err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.MeetingRepository().Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	uow.EventBus().Publish(events.MeetingScheduledEvent{
		MeetingID: meeting.ID,
		Theme:     meeting.Theme,
		Date:      meeting.Date,
		Grade:     meeting.Grade,
		Kind:      meeting.Type,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return meeting, nil
}

// UpdateMeeting replaces the fields of an existing meeting
func (s *meetingService) UpdateMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error) {
	normalizeMeeting(meeting)
	if err := validateStruct(meeting); err != nil {
		return nil, fmt.Errorf("invalid meeting: %w", err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.MeetingRepository().GetByID(ctx, meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("meeting %d: %w", meeting.ID, models.ErrMeetingNotFound)
	}

	if err := uow.MeetingRepository().Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	meeting.CreatedAt = existing.CreatedAt

	uow.EventBus().Publish(events.MeetingUpdatedEvent{
		MeetingID: meeting.ID,
		Theme:     meeting.Theme,
		Date:      meeting.Date,
		Grade:     meeting.Grade,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return meeting, nil
}

// ListMeetings returns all meetings, most recent first
func (s *meetingService) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	meetings, err := uow.MeetingRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get meetings: %w", err)
	}

	return meetings, nil
}

// GetMeeting returns one meeting
func (s *meetingService) GetMeeting(ctx context.Context, id int64) (*models.Meeting, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	meeting, err := uow.MeetingRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting == nil {
		return nil, fmt.Errorf("meeting %d: %w", id, models.ErrMeetingNotFound)
	}

	return meeting, nil
}

// GetUpcomingMeetings returns the next meetings dated after today, soonest first
func (s *meetingService) GetUpcomingMeetings(ctx context.Context, limit int) ([]*models.Meeting, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	meetings, err := uow.MeetingRepository().GetUpcoming(ctx, startOfDay(s.now()), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming meetings: %w", err)
	}

	return meetings, nil
}

// ListTemples returns the temples a meeting can be held in
func (s *meetingService) ListTemples(ctx context.Context) ([]*models.Temple, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	temples, err := uow.TempleRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get temples: %w", err)
	}

	return temples, nil
}

// ResolveLocation renders the location of a meeting. A location holding the ID
// of a known temple is shown as "Name N°id"; anything else is returned as is.
func (s *meetingService) ResolveLocation(ctx context.Context, meeting *models.Meeting) (string, error) {
	templeID, err := strconv.ParseInt(strings.TrimSpace(meeting.Location), 10, 64)
	if err != nil {
		return meeting.Location, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	temple, err := uow.TempleRepository().GetByID(ctx, templeID)
	if err != nil {
		return "", fmt.Errorf("failed to get temple: %w", err)
	}
	if temple == nil {
		return meeting.Location, nil
	}

	return TempleLabel(temple), nil
}

// TempleLabel renders a temple as "Name N°id"
func TempleLabel(temple *models.Temple) string {
	return fmt.Sprintf("%s N°%d", temple.Name, temple.ID)
}
