package service

import (
	"testing"

	"logia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestMeeting(id int64, grade models.Grade) *models.Meeting {
	return &models.Meeting{
		ID:       id,
		Theme:    "Tenida de prueba",
		Location: "1",
		Type:     models.MeetingTypeOrdinary,
		Grade:    grade,
	}
}

func createTestBrother(id int64, grade models.Grade) *models.Brother {
	return &models.Brother{
		ID:    id,
		Name:  "H∴ Prueba",
		Grade: grade,
	}
}

func createTestAttendances(brotherID int64, meetingIDs ...int64) []*models.Attendance {
	attendances := make([]*models.Attendance, 0, len(meetingIDs))
	for i, meetingID := range meetingIDs {
		attendances = append(attendances, &models.Attendance{
			ID:        int64(i + 1),
			BrotherID: brotherID,
			MeetingID: meetingID,
		})
	}
	return attendances
}

func threeGradeMeetings() []*models.Meeting {
	return []*models.Meeting{
		createTestMeeting(1, models.GradeApprentice),
		createTestMeeting(2, models.GradeCompanion),
		createTestMeeting(3, models.GradeMaster),
	}
}

func TestApplicableMeetings_Companion(t *testing.T) {
	meetings := threeGradeMeetings()

	applicable := ApplicableMeetings(models.GradeCompanion, meetings)

	require.Len(t, applicable, 2)
	assert.Equal(t, int64(1), applicable[0].ID)
	assert.Equal(t, int64(2), applicable[1].ID)
}

func TestApplicableMeetings_Master(t *testing.T) {
	meetings := threeGradeMeetings()

	applicable := ApplicableMeetings(models.GradeMaster, meetings)

	assert.Equal(t, meetings, applicable)
}

func TestApplicableMeetings_Apprentice(t *testing.T) {
	applicable := ApplicableMeetings(models.GradeApprentice, threeGradeMeetings())

	require.Len(t, applicable, 1)
	assert.Equal(t, models.GradeApprentice, applicable[0].Grade)
}

func TestApplicableMeetings_UnknownGrade(t *testing.T) {
	for _, grade := range []models.Grade{"", "Gran Maestro", "maestro"} {
		applicable := ApplicableMeetings(grade, threeGradeMeetings())
		assert.Empty(t, applicable, "grade %q", grade)
	}
}

func TestApplicableMeetings_SkipsMeetingsWithUnknownGrade(t *testing.T) {
	meetings := append(threeGradeMeetings(), createTestMeeting(4, "Desconocido"))

	applicable := ApplicableMeetings(models.GradeMaster, meetings)

	assert.Len(t, applicable, 3)
}

func TestApplicableMeetings_PreservesOrderAndDuplicates(t *testing.T) {
	m1 := createTestMeeting(7, models.GradeApprentice)
	m2 := createTestMeeting(3, models.GradeApprentice)
	meetings := []*models.Meeting{m1, m2, m1}

	applicable := ApplicableMeetings(models.GradeApprentice, meetings)

	assert.Equal(t, []*models.Meeting{m1, m2, m1}, applicable)
}

func TestApplicableMeetings_SubsetAndMonotonic(t *testing.T) {
	meetings := []*models.Meeting{
		createTestMeeting(1, models.GradeMaster),
		createTestMeeting(2, models.GradeApprentice),
		createTestMeeting(3, models.GradeApprentice),
		createTestMeeting(4, models.GradeCompanion),
		createTestMeeting(5, models.GradeMaster),
	}

	apprentice := ApplicableMeetings(models.GradeApprentice, meetings)
	companion := ApplicableMeetings(models.GradeCompanion, meetings)
	master := ApplicableMeetings(models.GradeMaster, meetings)

	for _, result := range [][]*models.Meeting{apprentice, companion, master} {
		assert.LessOrEqual(t, len(result), len(meetings))
		for _, m := range result {
			assert.Contains(t, meetings, m)
		}
	}
	assert.GreaterOrEqual(t, len(master), len(companion))
	assert.GreaterOrEqual(t, len(companion), len(apprentice))
	assert.Equal(t, []int{2, 3, 5}, []int{len(apprentice), len(companion), len(master)})
}

func TestApplicableMeetings_EmptyInput(t *testing.T) {
	for _, grade := range models.AllGrades {
		assert.Empty(t, ApplicableMeetings(grade, nil))
	}
}

func TestSummarize_NoAttendance(t *testing.T) {
	brother := createTestBrother(10, models.GradeApprentice)
	meetings := []*models.Meeting{
		createTestMeeting(1, models.GradeApprentice),
		createTestMeeting(2, models.GradeApprentice),
		createTestMeeting(3, models.GradeApprentice),
		createTestMeeting(4, models.GradeApprentice),
		createTestMeeting(5, models.GradeApprentice),
	}

	summary := Summarize(brother, meetings, nil)

	assert.Equal(t, 5, summary.ApplicableCount)
	assert.Equal(t, 0, summary.AttendedCount)
	assert.Equal(t, 5, summary.AbsenceCount)
	assert.Equal(t, 0, summary.AttendanceRate)
}

func TestSummarize_FullAttendance(t *testing.T) {
	brother := createTestBrother(10, models.GradeCompanion)
	meetings := []*models.Meeting{
		createTestMeeting(1, models.GradeApprentice),
		createTestMeeting(2, models.GradeCompanion),
		createTestMeeting(3, models.GradeCompanion),
		createTestMeeting(4, models.GradeApprentice),
		createTestMeeting(5, models.GradeMaster),
	}
	attendances := createTestAttendances(10, 1, 2, 3, 4)

	summary := Summarize(brother, meetings, attendances)

	assert.Equal(t, 4, summary.ApplicableCount)
	assert.Equal(t, 4, summary.AttendedCount)
	assert.Equal(t, 0, summary.AbsenceCount)
	assert.Equal(t, 100, summary.AttendanceRate)
	assert.Equal(t, 2, summary.GradeSessions)
	assert.Equal(t, 2, summary.GradeAttendances)
	assert.Equal(t, 100, summary.GradeRate)
}

func TestSummarize_IgnoresOtherBrothers(t *testing.T) {
	brother := createTestBrother(1, models.GradeMaster)
	meetings := threeGradeMeetings()
	attendances := append(createTestAttendances(1, 3), createTestAttendances(2, 1, 2, 3)...)

	summary := Summarize(brother, meetings, attendances)

	assert.Equal(t, 3, summary.ApplicableCount)
	assert.Equal(t, 1, summary.AttendedCount)
	assert.Equal(t, 2, summary.AbsenceCount)
	assert.Equal(t, 33, summary.AttendanceRate)
	assert.Equal(t, 1, summary.GradeSessions)
	assert.Equal(t, 1, summary.GradeAttendances)
	assert.Equal(t, 100, summary.GradeRate)
}

func TestSummarize_CountsAttendanceAboveGrade(t *testing.T) {
	// An apprentice recorded at a Master meeting still has that record counted
	brother := createTestBrother(1, models.GradeApprentice)
	meetings := threeGradeMeetings()
	attendances := createTestAttendances(1, 1, 3)

	summary := Summarize(brother, meetings, attendances)

	assert.Equal(t, 1, summary.ApplicableCount)
	assert.Equal(t, 2, summary.AttendedCount)
	assert.Equal(t, 0, summary.AbsenceCount)
	assert.Equal(t, 200, summary.AttendanceRate)
	assert.Equal(t, 1, summary.GradeAttendances)
	assert.Equal(t, 100, summary.GradeRate)
}

func TestAggregate_KeepsRatesAboveHundred(t *testing.T) {
	meetings := threeGradeMeetings()
	apprentice := createTestBrother(1, models.GradeApprentice)
	master := createTestBrother(2, models.GradeMaster)
	attendances := createTestAttendances(1, 1, 2, 3)

	summaries := SummarizeAll([]*models.Brother{apprentice, master}, meetings, attendances)

	assert.Equal(t, 1, summaries[0].ApplicableCount)
	assert.Equal(t, 3, summaries[0].AttendedCount)
	assert.Equal(t, 0, summaries[0].AbsenceCount)
	assert.Equal(t, 300, summaries[0].AttendanceRate)
	assert.Equal(t, 0, summaries[1].AttendanceRate)

	averages := Aggregate(summaries)
	assert.Equal(t, 150, averages.AverageOverallRate)
	assert.Equal(t, 50, averages.AverageGradeRate)
}

func TestSummarize_RoundsRates(t *testing.T) {
	brother := createTestBrother(1, models.GradeMaster)
	meetings := []*models.Meeting{
		createTestMeeting(1, models.GradeMaster),
		createTestMeeting(2, models.GradeMaster),
		createTestMeeting(3, models.GradeMaster),
		createTestMeeting(4, models.GradeMaster),
		createTestMeeting(5, models.GradeMaster),
		createTestMeeting(6, models.GradeMaster),
		createTestMeeting(7, models.GradeMaster),
		createTestMeeting(8, models.GradeMaster),
	}

	// 2/3 -> 66.67 rounds to 67; 1/8 -> 12.5 rounds half up to 13
	summary := Summarize(brother, meetings[:3], createTestAttendances(1, 1, 2))
	assert.Equal(t, 67, summary.AttendanceRate)

	summary = Summarize(brother, meetings, createTestAttendances(1, 1))
	assert.Equal(t, 13, summary.AttendanceRate)
}

func TestSummarize_EmptyMeetings(t *testing.T) {
	for _, grade := range models.AllGrades {
		summary := Summarize(createTestBrother(1, grade), nil, createTestAttendances(1, 1, 2))

		assert.Equal(t, 0, summary.ApplicableCount)
		assert.Equal(t, 0, summary.AttendanceRate)
		assert.Equal(t, 0, summary.AbsenceCount)
		assert.Equal(t, 0, summary.GradeSessions)
		assert.Equal(t, 0, summary.GradeRate)
	}
}

func TestSummarize_UnknownGrade(t *testing.T) {
	brother := createTestBrother(1, "")
	meetings := append(threeGradeMeetings(), createTestMeeting(4, ""))

	summary := Summarize(brother, meetings, createTestAttendances(1, 4))

	assert.Equal(t, 0, summary.ApplicableCount)
	assert.Equal(t, 0, summary.GradeSessions)
	assert.Equal(t, 0, summary.GradeAttendances)
	assert.Equal(t, 1, summary.AttendedCount)
	assert.Equal(t, 0, summary.AttendanceRate)
}

func TestSummarize_Idempotent(t *testing.T) {
	brother := createTestBrother(1, models.GradeCompanion)
	meetings := threeGradeMeetings()
	attendances := createTestAttendances(1, 1)

	first := Summarize(brother, meetings, attendances)
	second := Summarize(brother, meetings, attendances)

	assert.Equal(t, first, second)
	assert.Equal(t, ApplicableMeetings(brother.Grade, meetings), ApplicableMeetings(brother.Grade, meetings))
}

func TestSummarize_NilBrother(t *testing.T) {
	summary := Summarize(nil, threeGradeMeetings(), createTestAttendances(1, 1))

	assert.Equal(t, &models.AttendanceSummary{}, summary)
}

func TestAggregate_Empty(t *testing.T) {
	averages := Aggregate(nil)

	assert.Equal(t, 0, averages.AverageOverallRate)
	assert.Equal(t, 0, averages.AverageGradeRate)
}

func TestAggregate_UnweightedMean(t *testing.T) {
	summaries := []*models.AttendanceSummary{
		{AttendanceRate: 100, GradeRate: 50, ApplicableCount: 40},
		{AttendanceRate: 50, GradeRate: 0, ApplicableCount: 2},
		{AttendanceRate: 0, GradeRate: 25, ApplicableCount: 1},
	}

	averages := Aggregate(summaries)

	assert.Equal(t, 50, averages.AverageOverallRate)
	assert.Equal(t, 25, averages.AverageGradeRate)
}

func TestAggregate_Rounds(t *testing.T) {
	summaries := []*models.AttendanceSummary{
		{AttendanceRate: 67, GradeRate: 1},
		{AttendanceRate: 66, GradeRate: 0},
	}

	averages := Aggregate(summaries)

	assert.Equal(t, 67, averages.AverageOverallRate) // 66.5 rounds up
	assert.Equal(t, 1, averages.AverageGradeRate)    // 0.5 rounds up
}

func TestSummarizeAll(t *testing.T) {
	brothers := []*models.Brother{
		createTestBrother(1, models.GradeApprentice),
		createTestBrother(2, models.GradeMaster),
	}
	meetings := threeGradeMeetings()
	attendances := append(createTestAttendances(1, 1), createTestAttendances(2, 1, 2)...)

	summaries := SummarizeAll(brothers, meetings, attendances)

	require.Len(t, summaries, 2)
	assert.Equal(t, 100, summaries[0].AttendanceRate)
	assert.Equal(t, 67, summaries[1].AttendanceRate)
	assert.Equal(t, models.AttendanceAverages{AverageOverallRate: 84, AverageGradeRate: 50}, Aggregate(summaries))
}
