// Package export renders lodge reports as PDF, spreadsheet, image and letter files.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"logia/models"

	"github.com/natefinch/atomic"
)

// Lodge identifies the lodge on report titles and convocation letters
type Lodge struct {
	Name             string
	Number           string
	Installed        string
	GrandLodge       string
	Rite             string
	Orient           string
	WorshipfulMaster string
	Secretary        string
	MeetingTime      string
}

// Title returns the lodge name as printed on report headers
func (l Lodge) Title() string {
	if l.Number == "" {
		return "Resp:. Log:. " + l.Name
	}
	return fmt.Sprintf("Resp:. Log:. %s N°%s", l.Name, l.Number)
}

// Header is the title block printed above a report table
type Header struct {
	Lodge     Lodge
	Subtitle  string
	Generated time.Time
}

// AttendanceRow is one flattened line of the attendance report
type AttendanceRow struct {
	Name             string
	Grade            string
	Position         string
	Attended         int
	Applicable       int
	Absences         int
	Rate             int
	GradeAttendances int
	GradeSessions    int
	GradeRate        int
}

// AttendanceRows flattens the summaries of a report in their original order
func AttendanceRows(report *models.AttendanceReport) []AttendanceRow {
	if report == nil {
		return nil
	}

	rows := make([]AttendanceRow, 0, len(report.Summaries))
	for _, summary := range report.Summaries {
		row := AttendanceRow{
			Name:             "-",
			Grade:            "-",
			Position:         "-",
			Attended:         summary.AttendedCount,
			Applicable:       summary.ApplicableCount,
			Absences:         summary.AbsenceCount,
			Rate:             summary.AttendanceRate,
			GradeAttendances: summary.GradeAttendances,
			GradeSessions:    summary.GradeSessions,
			GradeRate:        summary.GradeRate,
		}
		if brother := summary.Brother; brother != nil {
			row.Name = brother.Name
			row.Grade = orDash(string(brother.Grade))
			row.Position = orDash(deref(brother.PositionName))
		}
		rows = append(rows, row)
	}
	return rows
}

// brotherCells returns name, cedula, grade and position with "-" for missing values
func brotherCells(brother *models.Brother) []string {
	return []string{
		brother.Name,
		orDash(deref(brother.Cedula)),
		orDash(string(brother.Grade)),
		orDash(deref(brother.PositionName)),
	}
}

func percent(rate int) string {
	return strconv.Itoa(rate) + "%"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ReportFileName returns "prefix_YYYY-MM-DD.ext"
func ReportFileName(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(time.DateOnly), ext)
}

// WriteFile atomically replaces the file at path with the contents of r
func WriteFile(path string, r io.Reader) error {
	if err := atomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
