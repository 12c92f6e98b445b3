package service

import (
	"context"
	"testing"

	"logia/events"
	"logia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type attendanceServiceMocks struct {
	uow            *MockUnitOfWork
	factory        *MockUnitOfWorkFactory
	brotherRepo    *MockBrotherRepository
	meetingRepo    *MockMeetingRepository
	attendanceRepo *MockAttendanceRepository
}

func newAttendanceServiceMocks(ctx context.Context) *attendanceServiceMocks {
	m := &attendanceServiceMocks{
		uow:            new(MockUnitOfWork),
		factory:        new(MockUnitOfWorkFactory),
		brotherRepo:    new(MockBrotherRepository),
		meetingRepo:    new(MockMeetingRepository),
		attendanceRepo: new(MockAttendanceRepository),
	}
	m.uow.SetRepositories(m.brotherRepo, m.meetingRepo, m.attendanceRepo, nil, nil)

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	return m
}

func TestAttendanceService_RecordAttendance_NewRow(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)
	attendance := &models.Attendance{ID: 40, BrotherID: 2, MeetingID: 7}

	m.uow.On("Commit").Return(nil)
	m.meetingRepo.On("GetByID", ctx, int64(7)).Return(createTestMeeting(7, models.GradeApprentice), nil)
	m.brotherRepo.On("GetByID", ctx, int64(2)).Return(createTestBrother(2, models.GradeMaster), nil)
	m.attendanceRepo.On("Record", ctx, int64(2), int64(7)).Return(attendance, true, nil)

	result, err := service.RecordAttendance(ctx, 7, 2)

	require.NoError(t, err)
	assert.Equal(t, attendance, result)

	published := m.uow.Publisher().Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.AttendanceRecordedEvent{AttendanceID: 40, BrotherID: 2, MeetingID: 7}, published[0])
	m.uow.AssertExpectations(t)
}

func TestAttendanceService_RecordAttendance_DuplicateIsNoop(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)
	existing := &models.Attendance{ID: 40, BrotherID: 2, MeetingID: 7}

	m.meetingRepo.On("GetByID", ctx, int64(7)).Return(createTestMeeting(7, models.GradeApprentice), nil)
	m.brotherRepo.On("GetByID", ctx, int64(2)).Return(createTestBrother(2, models.GradeMaster), nil)
	m.attendanceRepo.On("Record", ctx, int64(2), int64(7)).Return(existing, false, nil)

	result, err := service.RecordAttendance(ctx, 7, 2)

	require.NoError(t, err)
	assert.Equal(t, existing, result)
	assert.Empty(t, m.uow.Publisher().Events())
	m.uow.AssertNotCalled(t, "Commit")
}

func TestAttendanceService_RecordAttendance_MeetingNotFound(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)

	m.meetingRepo.On("GetByID", ctx, int64(7)).Return(nil, nil)

	_, err := service.RecordAttendance(ctx, 7, 2)

	assert.ErrorIs(t, err, models.ErrMeetingNotFound)
	m.attendanceRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttendanceService_RecordAttendance_BrotherNotFound(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)

	m.meetingRepo.On("GetByID", ctx, int64(7)).Return(createTestMeeting(7, models.GradeApprentice), nil)
	m.brotherRepo.On("GetByID", ctx, int64(2)).Return(nil, nil)

	_, err := service.RecordAttendance(ctx, 7, 2)

	assert.ErrorIs(t, err, models.ErrBrotherNotFound)
	m.attendanceRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttendanceService_RemoveAttendance(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)

	m.uow.On("Commit").Return(nil)
	m.attendanceRepo.On("Delete", ctx, int64(2), int64(7)).Return(false, nil)

	err := service.RemoveAttendance(ctx, 7, 2)

	require.NoError(t, err)
	m.attendanceRepo.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestAttendanceService_ListAttendees_MeetingNotFound(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)

	m.meetingRepo.On("GetByID", ctx, int64(7)).Return(nil, nil)

	_, err := service.ListAttendees(ctx, 7)

	assert.ErrorIs(t, err, models.ErrMeetingNotFound)
	m.attendanceRepo.AssertNotCalled(t, "GetByMeeting", mock.Anything, mock.Anything)
}

func TestAttendanceService_SuggestBrothers_EmptyQuery(t *testing.T) {
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewAttendanceService(mockFactory)

	suggestions, err := service.SuggestBrothers(context.Background(), "  ")

	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestAttendanceService_SuggestBrothers_MatchesNameAndCedula(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)

	m.brotherRepo.On("GetAll", ctx).Return([]*models.Brother{
		{ID: 1, Name: "Andrés Peña", Cedula: stringPtr("V-11222333")},
		{ID: 2, Name: "Pedro Rojas", Cedula: stringPtr("V-44555666")},
		{ID: 3, Name: "Luis Mora"},
	}, nil)

	byName, err := service.SuggestBrothers(ctx, "pena")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ID)

	byCedula, err := service.SuggestBrothers(ctx, "4455")
	require.NoError(t, err)
	require.Len(t, byCedula, 1)
	assert.Equal(t, int64(2), byCedula[0].ID)

	none, err := service.SuggestBrothers(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttendanceService_GetAttendanceReport_ByGrade(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)
	grade := models.GradeCompanion

	companion := createTestBrother(1, models.GradeCompanion)
	meetings := threeGradeMeetings()
	attendances := append(createTestAttendances(1, 1, 2), createTestAttendances(9, 1, 2, 3)...)

	m.brotherRepo.On("GetByGrade", ctx, models.GradeCompanion).Return([]*models.Brother{companion}, nil)
	m.meetingRepo.On("GetAll", ctx).Return(meetings, nil)
	m.attendanceRepo.On("GetAll", ctx).Return(attendances, nil)

	report, err := service.GetAttendanceReport(ctx, &grade)

	require.NoError(t, err)
	assert.Equal(t, &grade, report.Grade)
	require.Len(t, report.Summaries, 1)

	summary := report.Summaries[0]
	assert.Equal(t, 2, summary.ApplicableCount)
	assert.Equal(t, 2, summary.AttendedCount)
	assert.Equal(t, 0, summary.AbsenceCount)
	assert.Equal(t, 100, summary.AttendanceRate)
	assert.Equal(t, 1, summary.GradeSessions)
	assert.Equal(t, 1, summary.GradeAttendances)
	assert.Equal(t, 100, summary.GradeRate)

	assert.Equal(t, models.AttendanceAverages{AverageOverallRate: 100, AverageGradeRate: 100}, report.Averages)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestAttendanceService_GetAttendanceReport_AllGrades(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)

	m.brotherRepo.On("GetAll", ctx).Return([]*models.Brother{}, nil)
	m.meetingRepo.On("GetAll", ctx).Return([]*models.Meeting{}, nil)
	m.attendanceRepo.On("GetAll", ctx).Return([]*models.Attendance{}, nil)

	report, err := service.GetAttendanceReport(ctx, nil)

	require.NoError(t, err)
	assert.Nil(t, report.Grade)
	assert.Empty(t, report.Summaries)
	assert.Equal(t, models.AttendanceAverages{}, report.Averages)
}

func TestAttendanceService_GetBrotherSummary(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)
	apprentice := createTestBrother(4, models.GradeApprentice)

	m.brotherRepo.On("GetByID", ctx, int64(4)).Return(apprentice, nil)
	m.meetingRepo.On("GetAll", ctx).Return(threeGradeMeetings(), nil)
	m.attendanceRepo.On("GetByBrother", ctx, int64(4)).Return([]*models.Attendance{}, nil)

	summary, err := service.GetBrotherSummary(ctx, 4)

	require.NoError(t, err)
	assert.Equal(t, apprentice, summary.Brother)
	assert.Equal(t, 1, summary.ApplicableCount)
	assert.Equal(t, 1, summary.AbsenceCount)
	assert.Equal(t, 0, summary.AttendanceRate)
}

func TestAttendanceService_GetBrotherSummary_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newAttendanceServiceMocks(ctx)

	service := NewAttendanceService(m.factory)

	m.brotherRepo.On("GetByID", ctx, int64(4)).Return(nil, nil)

	_, err := service.GetBrotherSummary(ctx, 4)

	assert.ErrorIs(t, err, models.ErrBrotherNotFound)
}
