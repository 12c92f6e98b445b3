package service

import (
	"math"

	"logia/models"
)

// ApplicableMeetings returns the meetings a brother of the given grade is expected
// to attend. A grade covers meetings at its own level and below, so a Maestro is
// expected at every meeting. Unknown grades are expected at none.
// Input order and duplicates are preserved.
func ApplicableMeetings(grade models.Grade, meetings []*models.Meeting) []*models.Meeting {
	level := grade.Level()
	applicable := make([]*models.Meeting, 0, len(meetings))
	if level == 0 {
		return applicable
	}

	for _, meeting := range meetings {
		meetingLevel := meeting.Grade.Level()
		if meetingLevel > 0 && meetingLevel <= level {
			applicable = append(applicable, meeting)
		}
	}
	return applicable
}

// Summarize computes the attendance statistics of one brother.
//
// AttendedCount counts every attendance record of the brother, including records
// for meetings outside the applicable set, so it can exceed ApplicableCount.
// AbsenceCount is floored at zero in that case; AttendanceRate then exceeds 100.
func Summarize(brother *models.Brother, meetings []*models.Meeting, attendances []*models.Attendance) *models.AttendanceSummary {
	summary := &models.AttendanceSummary{Brother: brother}
	if brother == nil {
		return summary
	}

	summary.ApplicableCount = len(ApplicableMeetings(brother.Grade, meetings))

	gradeMeetings := make(map[int64]struct{})
	if brother.Grade.IsValid() {
		for _, meeting := range meetings {
			if meeting.Grade == brother.Grade {
				summary.GradeSessions++
				gradeMeetings[meeting.ID] = struct{}{}
			}
		}
	}

	for _, attendance := range attendances {
		if attendance.BrotherID != brother.ID {
			continue
		}
		summary.AttendedCount++
		if _, ok := gradeMeetings[attendance.MeetingID]; ok {
			summary.GradeAttendances++
		}
	}

	summary.AbsenceCount = max(0, summary.ApplicableCount-summary.AttendedCount)
	summary.AttendanceRate = percentage(summary.AttendedCount, summary.ApplicableCount)
	summary.GradeRate = percentage(summary.GradeAttendances, summary.GradeSessions)

	return summary
}

// SummarizeAll computes a summary for each brother against the same snapshot
func SummarizeAll(brothers []*models.Brother, meetings []*models.Meeting, attendances []*models.Attendance) []*models.AttendanceSummary {
	summaries := make([]*models.AttendanceSummary, 0, len(brothers))
	for _, brother := range brothers {
		summaries = append(summaries, Summarize(brother, meetings, attendances))
	}
	return summaries
}

// Aggregate returns the unweighted mean of the brothers' overall and grade rates.
// Each brother counts once regardless of how many meetings apply to them.
func Aggregate(summaries []*models.AttendanceSummary) models.AttendanceAverages {
	if len(summaries) == 0 {
		return models.AttendanceAverages{}
	}

	var overall, grade int
	for _, summary := range summaries {
		overall += summary.AttendanceRate
		grade += summary.GradeRate
	}

	n := float64(len(summaries))
	return models.AttendanceAverages{
		AverageOverallRate: int(math.Round(float64(overall) / n)),
		AverageGradeRate:   int(math.Round(float64(grade) / n)),
	}
}

// percentage returns part/total as a rounded integer, or 0 when total is 0.
// It is not capped: a brother with more records than applicable meetings rates above 100.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
