package models

// AttendanceSummary is the derived attendance statistics of one brother
type AttendanceSummary struct {
	Brother *Brother

	ApplicableCount int // Meetings the brother was expected to attend
	AttendedCount   int // All attendance records of the brother
	AbsenceCount    int // ApplicableCount - AttendedCount, floored at zero
	AttendanceRate  int // Percentage 0-100

	GradeSessions    int // Meetings held at exactly the brother's grade
	GradeAttendances int // Attendances at those meetings
	GradeRate        int // Percentage 0-100
}

// AttendanceAverages is the unweighted mean of a set of summaries
type AttendanceAverages struct {
	AverageOverallRate int
	AverageGradeRate   int
}

// AttendanceReport is the attendance table for a set of brothers
type AttendanceReport struct {
	Grade     *Grade // nil when all grades are included
	Summaries []*AttendanceSummary
	Averages  AttendanceAverages
}

// Overview is the dashboard summary of the lodge
type Overview struct {
	TotalBrothers     int
	TotalMeetings     int
	AverageAttendance int
	GradeDistribution []GradeCount
	UpcomingMeetings  []*Meeting
}

// SearchResults holds the matches of a global search
type SearchResults struct {
	Brothers []*Brother
	Meetings []*Meeting
}
