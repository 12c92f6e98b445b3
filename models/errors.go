package models

import "errors"

var (
	ErrBrotherNotFound    = errors.New("brother not found")
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrInvalidGrade       = errors.New("invalid grade")
	ErrInvalidMeetingType = errors.New("invalid meeting type")
	ErrSearchTooShort     = errors.New("search query must have at least 2 characters")
)
