package models

import (
	"strings"
)

// Grade represents a brother's degree in the lodge
type Grade string

const (
	GradeApprentice Grade = "Aprendiz"
	GradeCompanion  Grade = "Compañero"
	GradeMaster     Grade = "Maestro"
)

// AllGrades lists the grades in ascending order
var AllGrades = []Grade{GradeApprentice, GradeCompanion, GradeMaster}

// Level returns the position of the grade in the rank order (1-3).
// Unknown grades return 0.
func (g Grade) Level() int {
	switch g {
	case GradeApprentice:
		return 1
	case GradeCompanion:
		return 2
	case GradeMaster:
		return 3
	default:
		return 0
	}
}

// IsValid reports whether the grade is one of the known grades
func (g Grade) IsValid() bool {
	return g.Level() > 0
}

// ParseGrade parses a grade label, accepting Spanish and English names
// regardless of case or accents
func ParseGrade(s string) (Grade, error) {
	switch foldLabel(s) {
	case "aprendiz", "apprentice":
		return GradeApprentice, nil
	case "companero", "companion", "fellowcraft":
		return GradeCompanion, nil
	case "maestro", "master":
		return GradeMaster, nil
	default:
		return "", ErrInvalidGrade
	}
}

// MeetingType is the category label of a meeting
type MeetingType string

const (
	MeetingTypeOrdinary      MeetingType = "Ordinaria"
	MeetingTypeExtraordinary MeetingType = "Extraordinaria"
	MeetingTypeJoint         MeetingType = "Conjunta"
)

// IsValid reports whether the type is one of the known meeting types
func (t MeetingType) IsValid() bool {
	switch t {
	case MeetingTypeOrdinary, MeetingTypeExtraordinary, MeetingTypeJoint:
		return true
	}
	return false
}

// ParseMeetingType parses a meeting type label regardless of case
func ParseMeetingType(s string) (MeetingType, error) {
	switch foldLabel(s) {
	case "ordinaria", "ordinary":
		return MeetingTypeOrdinary, nil
	case "extraordinaria", "extraordinary":
		return MeetingTypeExtraordinary, nil
	case "conjunta", "joint":
		return MeetingTypeJoint, nil
	default:
		return "", ErrInvalidMeetingType
	}
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

func foldLabel(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// FoldLabel lowercases and strips Spanish accents so labels can be compared loosely
func FoldLabel(s string) string {
	return foldLabel(s)
}

// ParseGradeFilter parses an optional grade filter. Empty, "all" and "todos"
// mean no filter and return nil.
func ParseGradeFilter(s string) (*Grade, error) {
	switch foldLabel(s) {
	case "", "all", "todos", "todas":
		return nil, nil
	}
	grade, err := ParseGrade(s)
	if err != nil {
		return nil, err
	}
	return &grade, nil
}
