package models

import (
	"time"
)

// Position is a lodge office such as Venerable Maestro or Secretario
type Position struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// PositionHolder pairs a position with the brother currently holding it
type PositionHolder struct {
	Position *Position
	Brother  *Brother // nil when the office is vacant
}

// PositionHistoryEntry is one tenure of a brother in a position
type PositionHistoryEntry struct {
	ID          int64      `db:"id"`
	PositionID  int64      `db:"position_id"`
	BrotherID   int64      `db:"brother_id"`
	BrotherName string     `db:"-"`
	StartDate   time.Time  `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
}

// IsCurrent reports whether the tenure is still open
func (e *PositionHistoryEntry) IsCurrent() bool {
	return e.EndDate == nil
}
