package models

import (
	"time"
)

// Attendance records that a brother was present at a meeting
type Attendance struct {
	ID        int64     `db:"id"`
	BrotherID int64     `db:"brother_id"`
	MeetingID int64     `db:"meeting_id"`
	CreatedAt time.Time `db:"created_at"`
}

// AttendanceDetail is an attendance joined with the attending brother
type AttendanceDetail struct {
	Attendance *Attendance
	Brother    *Brother
}
