package models

import (
	"time"
)

// Brother represents a lodge member
type Brother struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name" validate:"notblank"`
	Cedula       *string   `db:"cedula"`
	Grade        Grade     `db:"grade" validate:"grade"`
	PositionID   *int64    `db:"position_id"`
	PositionName *string   `db:"-"` // Joined from positions when listing
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ImportRow is a brother row read from a spreadsheet before positions are resolved
type ImportRow struct {
	Name         string
	Cedula       string
	Grade        Grade
	PositionName string
}

// GradeCount is the number of brothers holding a grade
type GradeCount struct {
	Grade      Grade
	Count      int
	Percentage int // Rounded share of all brothers, 0-100
}
