package service

import (
	"context"
	"time"

	"logia/events"
	"logia/models"
)

// BrotherRepository defines the interface for brother data access
type BrotherRepository interface {
	// GetByID retrieves a brother by ID, returning nil if not found
	GetByID(ctx context.Context, id int64) (*models.Brother, error)

	// GetAll returns all brothers ordered by name, with their position name
	GetAll(ctx context.Context) ([]*models.Brother, error)

	// GetByGrade returns the brothers of one grade ordered by name
	GetByGrade(ctx context.Context, grade models.Grade) ([]*models.Brother, error)

	// GetByPosition returns the brother currently holding a position, or nil
	GetByPosition(ctx context.Context, positionID int64) (*models.Brother, error)

	// Search returns brothers whose name or cedula contains the query
	Search(ctx context.Context, query string, limit int) ([]*models.Brother, error)

	// Create inserts a brother and fills in its ID and timestamps
	Create(ctx context.Context, brother *models.Brother) error

	// CreateMany inserts brothers in one batch and fills in their IDs
	CreateMany(ctx context.Context, brothers []*models.Brother) error

	// UpdateGradeAndPosition sets a brother's grade and position
	UpdateGradeAndPosition(ctx context.Context, id int64, grade models.Grade, positionID *int64) error

	// ClearPosition removes a position from whichever brother holds it
	ClearPosition(ctx context.Context, positionID int64) error
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// GetByID retrieves a meeting by ID, returning nil if not found
	GetByID(ctx context.Context, id int64) (*models.Meeting, error)

	// GetAll returns all meetings, most recent first
	GetAll(ctx context.Context) ([]*models.Meeting, error)

	// GetUpcoming returns meetings dated after the given day, soonest first
	GetUpcoming(ctx context.Context, after time.Time, limit int) ([]*models.Meeting, error)

	// Search returns meetings whose theme contains the query
	Search(ctx context.Context, query string, limit int) ([]*models.Meeting, error)

	// Create inserts a meeting and fills in its ID
	Create(ctx context.Context, meeting *models.Meeting) error

	// Update overwrites the editable fields of a meeting
	Update(ctx context.Context, meeting *models.Meeting) error
}

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Record inserts an attendance unless the pair already exists.
	// The returned bool reports whether a new row was inserted.
	Record(ctx context.Context, brotherID, meetingID int64) (*models.Attendance, bool, error)

	// GetAll returns every attendance record
	GetAll(ctx context.Context) ([]*models.Attendance, error)

	// GetByMeeting returns the attendances of a meeting joined with the brothers
	GetByMeeting(ctx context.Context, meetingID int64) ([]*models.AttendanceDetail, error)

	// GetByBrother returns the attendance records of one brother
	GetByBrother(ctx context.Context, brotherID int64) ([]*models.Attendance, error)

	// Delete removes an attendance, reporting whether a row existed
	Delete(ctx context.Context, brotherID, meetingID int64) (bool, error)
}

// PositionRepository defines the interface for lodge offices and their history
type PositionRepository interface {
	// GetAll returns all positions ordered by name
	GetAll(ctx context.Context) ([]*models.Position, error)

	// GetByID retrieves a position by ID, returning nil if not found
	GetByID(ctx context.Context, id int64) (*models.Position, error)

	// GetByName retrieves a position by case-insensitive name, returning nil if not found
	GetByName(ctx context.Context, name string) (*models.Position, error)

	// GetHolders returns every position with its current holder, if any
	GetHolders(ctx context.Context) ([]*models.PositionHolder, error)

	// OpenHistory starts a history entry for a new holder
	OpenHistory(ctx context.Context, positionID, brotherID int64, start time.Time) error

	// CloseHistory ends the open history entries of a position
	CloseHistory(ctx context.Context, positionID int64, end time.Time) error

	// GetHistory returns the history of a position, newest first
	GetHistory(ctx context.Context, positionID int64) ([]*models.PositionHistoryEntry, error)
}

// TempleRepository defines the interface for temple data access
type TempleRepository interface {
	GetAll(ctx context.Context) ([]*models.Temple, error)
	GetByID(ctx context.Context, id int64) (*models.Temple, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// BrotherService defines the interface for brother operations
type BrotherService interface {
	// ListBrothers returns brothers filtered by grade (nil for all) and by a
	// case-insensitive search on name or position name
	ListBrothers(ctx context.Context, grade *models.Grade, search string) ([]*models.Brother, error)

	// GetBrother returns one brother or ErrBrotherNotFound
	GetBrother(ctx context.Context, id int64) (*models.Brother, error)

	// GetGradeDistribution returns the count and share of brothers per grade
	GetGradeDistribution(ctx context.Context) ([]models.GradeCount, error)

	// UpdateBrother changes a brother's grade and position
	UpdateBrother(ctx context.Context, id int64, grade models.Grade, positionID *int64) (*models.Brother, error)

	// ImportBrothers creates brothers from spreadsheet rows and returns how many were created
	ImportBrothers(ctx context.Context, rows []models.ImportRow) (int, error)
}

// MeetingService defines the interface for meeting operations
type MeetingService interface {
	CreateMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error)
	ListMeetings(ctx context.Context) ([]*models.Meeting, error)
	GetMeeting(ctx context.Context, id int64) (*models.Meeting, error)
	GetUpcomingMeetings(ctx context.Context, limit int) ([]*models.Meeting, error)
	ListTemples(ctx context.Context) ([]*models.Temple, error)

	// ResolveLocation renders a meeting location, expanding temple IDs to "Name N°id"
	ResolveLocation(ctx context.Context, meeting *models.Meeting) (string, error)
}

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	// RecordAttendance marks a brother present. Recording twice is a no-op.
	RecordAttendance(ctx context.Context, meetingID, brotherID int64) (*models.Attendance, error)

	RemoveAttendance(ctx context.Context, meetingID, brotherID int64) error
	ListAttendees(ctx context.Context, meetingID int64) ([]*models.AttendanceDetail, error)

	// SuggestBrothers returns brothers whose name or cedula contains the query
	SuggestBrothers(ctx context.Context, query string) ([]*models.Brother, error)

	// GetAttendanceReport summarizes attendance for the brothers of a grade (nil for all)
	GetAttendanceReport(ctx context.Context, grade *models.Grade) (*models.AttendanceReport, error)

	GetBrotherSummary(ctx context.Context, brotherID int64) (*models.AttendanceSummary, error)
}

// PositionService defines the interface for lodge office operations
type PositionService interface {
	GetBoard(ctx context.Context) ([]*models.PositionHolder, error)

	// AssignPosition gives a position to a brother, or leaves it vacant when brotherID is nil
	AssignPosition(ctx context.Context, positionID int64, brotherID *int64) error

	GetHistory(ctx context.Context, positionID int64) ([]*models.PositionHistoryEntry, error)
}

// OverviewService defines the interface for the dashboard summary and global search
type OverviewService interface {
	GetOverview(ctx context.Context) (*models.Overview, error)
	Search(ctx context.Context, query string) (*models.SearchResults, error)
}

// UnitOfWork manages a database transaction and the repositories bound to it
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BrotherRepository() BrotherRepository
	MeetingRepository() MeetingRepository
	AttendanceRepository() AttendanceRepository
	PositionRepository() PositionRepository
	TempleRepository() TempleRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
