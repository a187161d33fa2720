// Package timeslot is the slot-availability and booking-policy engine. Both
// the availability read path and the booking write path run through it, so the
// overlap predicate and the day-window arithmetic live here exactly once.
//
// Every calendar computation (day boundaries, weekend detection, the advance
// notice cutoff) happens in a single reference *time.Location supplied by the
// caller. Mixing local-clock and fixed-offset arithmetic is what this package
// exists to prevent.
package timeslot

import (
	"fmt"
	"sort"
	"time"

	"roomly/pkg/model"
)

const (
	// Operating day runs 08:00 through 01:00 the next calendar date. Hour
	// indices 24 and 25 denote 00:00 and 01:00 of the following day.
	OpeningHour = 8
	ClosingHour = 26

	// SlotsPerDay is the number of candidate slots before availability
	// filtering.
	SlotsPerDay = ClosingHour - OpeningHour

	// CutoffHour: bookings for day D open at 22:00 on day D-1.
	CutoffHour = 22

	WeekdayQuota = 1
	WeekendQuota = 2

	// SlotDuration leaves a one-second gap before the next slot starts, so
	// back-to-back bookings never trip the overlap predicate.
	SlotDuration = 59*time.Minute + 59*time.Second

	// ShapeTolerance absorbs timestamp construction rounding.
	ShapeTolerance = time.Second

	DayFormat = "2006-01-02"
)

// ParseDay parses a YYYY-MM-DD string as midnight of that day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, loc)
}

// Overlaps reports whether the interval [newStart, newEnd] collides with the
// existing booking [oldStart, oldEnd]. The test is deliberately asymmetric:
// the new start is checked against the half-open [oldStart, oldEnd) while the
// new end is checked against (oldStart, oldEnd], plus full containment. A slot
// that starts the instant another ends does not overlap.
func Overlaps(newStart, newEnd, oldStart, oldEnd time.Time) bool {
	if !newStart.Before(oldStart) && newStart.Before(oldEnd) {
		return true
	}
	if newEnd.After(oldStart) && !newEnd.After(oldEnd) {
		return true
	}
	return !newStart.After(oldStart) && !newEnd.Before(oldEnd)
}

// SlotStart returns the start instant for the given operating-day hour index,
// rolling the date forward for the after-midnight hours (24 and 25).
func SlotStart(day time.Time, hour int, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	if hour >= 24 {
		return time.Date(y, m, d+1, hour%24, 0, 0, 0, loc)
	}
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}

// Candidates returns all SlotsPerDay candidate slots for the operating day,
// in raw hour order and all marked available.
func Candidates(day time.Time, loc *time.Location) []model.Slot {
	slots := make([]model.Slot, 0, SlotsPerDay)
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		start := SlotStart(day, hour, loc)
		clockHour := hour % 24
		slots = append(slots, model.Slot{
			StartTime:          start,
			EndTime:            start.Add(SlotDuration),
			StartHour:          clockHour,
			FormattedStartTime: fmt.Sprintf("%02d:00", clockHour),
			FormattedEndTime:   fmt.Sprintf("%02d:59", clockHour),
			Available:          true,
		})
	}
	return slots
}

// Enumerate produces the bookable slots for a room's operating day: every
// candidate that does not overlap an existing booking, with the after-midnight
// slots (00:xx and 01:xx) sorted to the front of the list. Deterministic for
// a given day and booking set.
func Enumerate(day time.Time, existing []*model.Booking, loc *time.Location) []model.Slot {
	candidates := Candidates(day, loc)
	for _, b := range existing {
		for i := range candidates {
			if Overlaps(candidates[i].StartTime, candidates[i].EndTime, b.StartTime, b.EndTime) {
				candidates[i].Available = false
			}
		}
	}

	available := make([]model.Slot, 0, len(candidates))
	for _, s := range candidates {
		if s.Available {
			available = append(available, s)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		ai, aj := afterMidnight(available[i].StartHour), afterMidnight(available[j].StartHour)
		if ai != aj {
			return ai
		}
		return available[i].StartHour < available[j].StartHour
	})
	return available
}

func afterMidnight(hour int) bool {
	return hour == 0 || hour == 1
}

// CutoffReached reports whether now has passed the advance-notice cutoff for
// booking day: 22:00 on the previous calendar day, inclusive.
func CutoffReached(day, now time.Time, loc *time.Location) bool {
	y, m, d := day.In(loc).Date()
	cutoff := time.Date(y, m, d-1, CutoffHour, 0, 0, 0, loc)
	return !now.Before(cutoff)
}

// DayWindow is [D 00:00, D+1 02:00): the range of start times that belong to
// day D's availability view, including the after-midnight slots.
func DayWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d+1, 2, 0, 0, 0, loc)
}

// OperatingWindow is [D 08:00, D+1 02:00): the range the per-user daily quota
// is counted over.
func OperatingWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, OpeningHour, 0, 0, 0, loc), time.Date(y, m, d+1, 2, 0, 0, 0, loc)
}

// IsWeekend reports whether day falls on Saturday or Sunday in loc.
func IsWeekend(day time.Time, loc *time.Location) bool {
	wd := day.In(loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DailyQuota returns the per-user booking limit for day.
func DailyQuota(day time.Time, loc *time.Location) int {
	if IsWeekend(day, loc) {
		return WeekendQuota
	}
	return WeekdayQuota
}

// ValidShape reports whether end-start is the required 59m59s slot length,
// within ShapeTolerance.
func ValidShape(start, end time.Time) bool {
	diff := end.Sub(start) - SlotDuration
	if diff < 0 {
		diff = -diff
	}
	return diff <= ShapeTolerance
}

// StartsOnHour reports whether start sits on a round hour in loc.
func StartsOnHour(start time.Time, loc *time.Location) bool {
	t := start.In(loc)
	return t.Minute() == 0 && t.Second() == 0
}
