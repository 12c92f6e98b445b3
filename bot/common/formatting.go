package common

import (
	"fmt"
	"strings"
	"time"

	"logia/models"
)

// FormatDate formats a meeting date as "05/11/2026"
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatRate renders a percentage with a ten-step progress bar. The bar stops
// at full; the number shows rates above 100 as they are.
func FormatRate(rate int) string {
	rate = max(0, rate)
	filled := min(10, (rate+5)/10)
	return fmt.Sprintf("%s%s %d%%", strings.Repeat("█", filled), strings.Repeat("░", 10-filled), rate)
}

// GradeLabel renders an optional grade filter
func GradeLabel(grade *models.Grade) string {
	if grade == nil {
		return "Todos los grados"
	}
	return string(*grade)
}

// BrotherLabel renders a brother as "Name (cedula)"
func BrotherLabel(brother *models.Brother) string {
	if brother.Cedula == nil || *brother.Cedula == "" {
		return brother.Name
	}
	return fmt.Sprintf("%s (%s)", brother.Name, *brother.Cedula)
}

// MeetingLabel renders a meeting as "05/11/2026 · Theme"
func MeetingLabel(meeting *models.Meeting) string {
	return fmt.Sprintf("%s · %s", FormatDate(meeting.Date), meeting.Theme)
}

// Truncate shortens s to at most limit runes, ending with an ellipsis
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
