package service

import (
	"context"
	"sync"
	"time"

	"logia/events"
	"logia/models"

	"github.com/stretchr/testify/mock"
)

// MockBrotherRepository is a mock implementation of BrotherRepository
type MockBrotherRepository struct {
	mock.Mock
}

func (m *MockBrotherRepository) GetByID(ctx context.Context, id int64) (*models.Brother, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brother), args.Error(1)
}

func (m *MockBrotherRepository) GetAll(ctx context.Context) ([]*models.Brother, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Brother), args.Error(1)
}

func (m *MockBrotherRepository) GetByGrade(ctx context.Context, grade models.Grade) ([]*models.Brother, error) {
	args := m.Called(ctx, grade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Brother), args.Error(1)
}

func (m *MockBrotherRepository) GetByPosition(ctx context.Context, positionID int64) (*models.Brother, error) {
	args := m.Called(ctx, positionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brother), args.Error(1)
}

func (m *MockBrotherRepository) Search(ctx context.Context, query string, limit int) ([]*models.Brother, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Brother), args.Error(1)
}

func (m *MockBrotherRepository) Create(ctx context.Context, brother *models.Brother) error {
	args := m.Called(ctx, brother)
	return args.Error(0)
}

func (m *MockBrotherRepository) CreateMany(ctx context.Context, brothers []*models.Brother) error {
	args := m.Called(ctx, brothers)
	return args.Error(0)
}

func (m *MockBrotherRepository) UpdateGradeAndPosition(ctx context.Context, id int64, grade models.Grade, positionID *int64) error {
	args := m.Called(ctx, id, grade, positionID)
	return args.Error(0)
}

func (m *MockBrotherRepository) ClearPosition(ctx context.Context, positionID int64) error {
	args := m.Called(ctx, positionID)
	return args.Error(0)
}

// MockMeetingRepository is a mock implementation of MeetingRepository
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) GetByID(ctx context.Context, id int64) (*models.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) GetAll(ctx context.Context) ([]*models.Meeting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) GetUpcoming(ctx context.Context, after time.Time, limit int) ([]*models.Meeting, error) {
	args := m.Called(ctx, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) Search(ctx context.Context, query string, limit int) ([]*models.Meeting, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Record(ctx context.Context, brotherID, meetingID int64) (*models.Attendance, bool, error) {
	args := m.Called(ctx, brotherID, meetingID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Attendance), args.Bool(1), args.Error(2)
}

func (m *MockAttendanceRepository) GetAll(ctx context.Context) ([]*models.Attendance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) GetByMeeting(ctx context.Context, meetingID int64) ([]*models.AttendanceDetail, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AttendanceDetail), args.Error(1)
}

func (m *MockAttendanceRepository) GetByBrother(ctx context.Context, brotherID int64) ([]*models.Attendance, error) {
	args := m.Called(ctx, brotherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) Delete(ctx context.Context, brotherID, meetingID int64) (bool, error) {
	args := m.Called(ctx, brotherID, meetingID)
	return args.Bool(0), args.Error(1)
}

// MockPositionRepository is a mock implementation of PositionRepository
type MockPositionRepository struct {
	mock.Mock
}

func (m *MockPositionRepository) GetAll(ctx context.Context) ([]*models.Position, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Position), args.Error(1)
}

func (m *MockPositionRepository) GetByID(ctx context.Context, id int64) (*models.Position, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Position), args.Error(1)
}

func (m *MockPositionRepository) GetByName(ctx context.Context, name string) (*models.Position, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Position), args.Error(1)
}

func (m *MockPositionRepository) GetHolders(ctx context.Context) ([]*models.PositionHolder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PositionHolder), args.Error(1)
}

func (m *MockPositionRepository) OpenHistory(ctx context.Context, positionID, brotherID int64, start time.Time) error {
	args := m.Called(ctx, positionID, brotherID, start)
	return args.Error(0)
}

func (m *MockPositionRepository) CloseHistory(ctx context.Context, positionID int64, end time.Time) error {
	args := m.Called(ctx, positionID, end)
	return args.Error(0)
}

func (m *MockPositionRepository) GetHistory(ctx context.Context, positionID int64) ([]*models.PositionHistoryEntry, error) {
	args := m.Called(ctx, positionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PositionHistoryEntry), args.Error(1)
}

// MockTempleRepository is a mock implementation of TempleRepository
type MockTempleRepository struct {
	mock.Mock
}

func (m *MockTempleRepository) GetAll(ctx context.Context) ([]*models.Temple, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Temple), args.Error(1)
}

func (m *MockTempleRepository) GetByID(ctx context.Context, id int64) (*models.Temple, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Temple), args.Error(1)
}

// MockEventPublisher records the events published through it
type MockEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of the published events
func (m *MockEventPublisher) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.events...)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	brotherRepo    BrotherRepository
	meetingRepo    MeetingRepository
	attendanceRepo AttendanceRepository
	positionRepo   PositionRepository
	templeRepo     TempleRepository
	publisher      *MockEventPublisher
}

// SetRepositories configures the repositories returned by the unit of work.
// Nil repositories may be passed for those a test does not touch.
func (m *MockUnitOfWork) SetRepositories(
	brotherRepo BrotherRepository,
	meetingRepo MeetingRepository,
	attendanceRepo AttendanceRepository,
	positionRepo PositionRepository,
	templeRepo TempleRepository,
) {
	m.brotherRepo = brotherRepo
	m.meetingRepo = meetingRepo
	m.attendanceRepo = attendanceRepo
	m.positionRepo = positionRepo
	m.templeRepo = templeRepo
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) BrotherRepository() BrotherRepository {
	return m.brotherRepo
}

func (m *MockUnitOfWork) MeetingRepository() MeetingRepository {
	return m.meetingRepo
}

func (m *MockUnitOfWork) AttendanceRepository() AttendanceRepository {
	return m.attendanceRepo
}

func (m *MockUnitOfWork) PositionRepository() PositionRepository {
	return m.positionRepo
}

func (m *MockUnitOfWork) TempleRepository() TempleRepository {
	return m.templeRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Publisher()
}

// Publisher returns the event recorder behind EventBus
func (m *MockUnitOfWork) Publisher() *MockEventPublisher {
	if m.publisher == nil {
		m.publisher = &MockEventPublisher{}
	}
	return m.publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
