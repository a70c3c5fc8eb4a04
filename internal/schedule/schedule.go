// Package schedule is the single place event date and time strings are
// parsed. Events carry their date as a display string ("05 Nov 2025" or
// "2025-11-05") and their time as a "7:00 PM - 9:00 PM" range; everything
// else in the codebase works with time.Time values produced here.
package schedule

import (
	"errors"
	"strings"
	"time"
)

const (
	displayDateLayout = "02 Jan 2006"
	isoDateLayout     = "2006-01-02"
	clockLayout       = "3:04 PM"
)

var (
	ErrInvalidDate      = errors.New("invalid date format, use '02 Jan 2006' or '2006-01-02'")
	ErrInvalidTimeRange = errors.New("invalid time format, use 'H:MM AM/PM - H:MM AM/PM'")
	ErrEndBeforeStart   = errors.New("end time must be after start time")
)

// TimeRange is the parsed form of an event's "start - end" time string.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ParseEventDate accepts the display format "05 Nov 2025" (an optional
// comma is tolerated) and ISO "2025-11-05".
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if d, err := time.ParseInLocation(displayDateLayout, s, time.Local); err == nil {
		return d, nil
	}
	if d, err := time.ParseInLocation(isoDateLayout, s, time.Local); err == nil {
		return d, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseTimeRange parses "7:00 PM - 9:00 PM" and requires the end to be
// strictly after the start.
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(s, " - ")
	if len(parts) != 2 {
		return TimeRange{}, ErrInvalidTimeRange
	}

	start, err := time.Parse(clockLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, ErrInvalidTimeRange
	}
	end, err := time.Parse(clockLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, ErrInvalidTimeRange
	}

	if !end.After(start) {
		return TimeRange{}, ErrEndBeforeStart
	}
	return TimeRange{Start: start, End: end}, nil
}

// Today returns local midnight, the floor used for "date is not in the past"
// checks.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// InPast reports whether the event date string falls before today.
// Unparseable dates are not considered past; callers validate separately.
func InPast(dateStr string) bool {
	d, err := ParseEventDate(dateStr)
	if err != nil {
		return false
	}
	return d.Before(Today())
}

// Upcoming reports whether the event date string is today or later.
func Upcoming(dateStr string) bool {
	d, err := ParseEventDate(dateStr)
	if err != nil {
		return false
	}
	return !d.Before(Today())
}
