package testutil

import (
	"time"

	"logia/models"
)

// CreateTestBrother creates a brother with default values
func CreateTestBrother(name string, grade models.Grade) *models.Brother {
	return &models.Brother{
		Name:  name,
		Grade: grade,
	}
}

// CreateTestBrotherWithCedula creates a brother with an identity document number
func CreateTestBrotherWithCedula(name, cedula string, grade models.Grade) *models.Brother {
	brother := CreateTestBrother(name, grade)
	brother.Cedula = &cedula
	return brother
}

// CreateTestMeeting creates an ordinary meeting for the given grade and day
func CreateTestMeeting(theme string, grade models.Grade, date time.Time) *models.Meeting {
	return &models.Meeting{
		Theme:    theme,
		Date:     Day(date),
		Location: "Templo Principal",
		Type:     models.MeetingTypeOrdinary,
		Grade:    grade,
	}
}

// Day truncates a time to UTC midnight, the precision of DATE columns
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
