package models

import (
	"time"
)

// Meeting represents a scheduled tenida
type Meeting struct {
	ID        int64       `db:"id"`
	Theme     string      `db:"theme" validate:"notblank"`
	Date      time.Time   `db:"date" validate:"required"`
	Location  string      `db:"location" validate:"notblank"`
	Type      MeetingType `db:"type" validate:"meeting_type"`
	Grade     Grade       `db:"grade" validate:"grade"`
	CreatedAt time.Time   `db:"created_at"`
}

// Temple is a place where meetings are held
type Temple struct {
	ID      int64   `db:"id"`
	Name    string  `db:"name"`
	Address *string `db:"address"`
}
