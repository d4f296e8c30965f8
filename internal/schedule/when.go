// Package schedule parses operator-entered delivery times and runs one-shot
// delivery jobs.
package schedule

import (
	"errors"
	"strings"
	"time"
)

const (
	layoutAbsolute = "2006-01-02 15:04"
	layoutDayMonth = "02/01 15:04"
)

var (
	// ErrBadFormat is returned when the input matches none of the accepted layouts.
	ErrBadFormat = errors.New("unrecognized datetime format")
	// ErrPastTime is returned when the resolved instant is not in the future.
	ErrPastTime = errors.New("datetime is in the past")
)

// ParseWhen resolves operator input to a delivery instant in loc.
//
// Accepted layouts:
//
//	2025-12-03 14:30  (absolute; rejected outright if already past)
//	03/12 14:30       (current year assumed; if already past, rolled forward
//	                   exactly one day, and rejected if still past)
func ParseWhen(input string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, ErrBadFormat
	}

	if t, err := time.ParseInLocation(layoutAbsolute, s, loc); err == nil {
		if !t.After(now) {
			return time.Time{}, ErrPastTime
		}
		return t, nil
	}

	t, err := time.ParseInLocation(layoutDayMonth, s, loc)
	if err != nil {
		return time.Time{}, ErrBadFormat
	}
	t = time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	if !t.After(now) {
		return time.Time{}, ErrPastTime
	}
	return t, nil
}
