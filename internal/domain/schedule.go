package domain

import (
	"time"

	"github.com/BreezDev/kimq/pkg/types"
)

// RecurringAvailability is a weekly-repeating open interval on a staff
// member's calendar. Weekday uses the Monday=0..Sunday=6 convention, matching
// how rows are stored. Multiple blocks per weekday are allowed and may
// overlap; overlapping blocks simply produce duplicate candidates that the
// booking overlap check collapses.
type RecurringAvailability struct {
	ID         int64
	EmployeeID int64
	Weekday    int
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// TimeOff is an ad-hoc blackout interval for a staff member. A candidate slot
// is blocked only when the interval fully covers the slot's occupancy window;
// partial overlap does not block.
type TimeOff struct {
	ID         int64
	EmployeeID int64
	StartTime  time.Time
	EndTime    time.Time
	Reason     string
}

// Covers reports whether the time-off interval fully covers [start, start+duration]
func (t *TimeOff) Covers(start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	return !t.StartTime.After(start) && !t.EndTime.Before(end)
}

// WeekdayIndex converts a date's weekday to the stored Monday=0..Sunday=6 index
func WeekdayIndex(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}
