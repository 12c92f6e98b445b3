package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"logia/models"
)

// Format is the file format of an exported report
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// ParseFormat accepts "pdf", "xlsx" and "excel", ignoring case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnsupportedFormat)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// RenderAttendance writes the attendance report in the given format
func RenderAttendance(w io.Writer, format Format, report *models.AttendanceReport, header Header) error {
	switch format {
	case FormatPDF:
		return AttendancePDF(w, report, header)
	case FormatExcel:
		return AttendanceExcel(w, report)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// RenderBrothers writes the brother roster in the given format
func RenderBrothers(w io.Writer, format Format, brothers []*models.Brother, header Header) error {
	switch format {
	case FormatPDF:
		return BrothersPDF(w, brothers, header)
	case FormatExcel:
		return BrothersExcel(w, brothers)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}
