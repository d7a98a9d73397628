package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is an offset from midnight with second precision.
type TimeOfDay time.Duration

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// NewTimeOfDay builds a TimeOfDay from clock components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// TimeOfDayOf extracts the wall-clock time of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// Clock returns hour, minute and second.
func (t TimeOfDay) Clock() (int, int, int) {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return h, m, s
}

// On anchors the time of day to a calendar date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	h, m, s := t.Clock()
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, loc)
}

func (t TimeOfDay) String() string {
	h, m, s := t.Clock()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// StaffSchedule is an availability window of a staff member on one date.
type StaffSchedule struct {
	ID            string
	StaffID       string
	StaffUsername string
	Date          time.Time
	StartTime     TimeOfDay
	EndTime       TimeOfDay
	IsAvailable   bool
	CreatedAt     time.Time
}

// Bounds returns the window as absolute instants in loc.
func (s *StaffSchedule) Bounds(loc *time.Location) (time.Time, time.Time) {
	return s.StartTime.On(s.Date, loc), s.EndTime.On(s.Date, loc)
}

// Covers reports whether an available window contains the instant t as a slot start.
func (s *StaffSchedule) Covers(t time.Time, loc *time.Location) bool {
	if !s.IsAvailable {
		return false
	}
	local := t.In(loc)
	if !SameDate(local, s.Date) {
		return false
	}
	tod := TimeOfDayOf(local)
	return s.StartTime <= tod && tod < s.EndTime
}

// SameDate compares calendar dates ignoring location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOf truncates t to its calendar date in loc, returned as UTC midnight.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
