package timeslot

import (
	"reflect"
	"testing"
	"time"

	"roomly/pkg/model"
)

var utc = time.UTC

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, utc)
}

func booking(start, end time.Time) *model.Booking {
	return &model.Booking{
		RoomID:    "507f1f77bcf86cd799439011",
		UserID:    "user-1",
		StartTime: start,
		EndTime:   end,
		Status:    model.StatusConfirmed,
	}
}

func TestCandidates_CountAndSpan(t *testing.T) {
	d := day(2024, time.June, 10)
	candidates := Candidates(d, utc)

	if len(candidates) != SlotsPerDay {
		t.Fatalf("expected %d candidate slots, got %d", SlotsPerDay, len(candidates))
	}

	first := candidates[0]
	if first.StartTime.Hour() != 8 || first.StartTime.Day() != 10 {
		t.Errorf("first candidate should start 08:00 on the 10th, got %s", first.StartTime)
	}

	last := candidates[len(candidates)-1]
	if last.StartTime.Hour() != 1 || last.StartTime.Day() != 11 {
		t.Errorf("last candidate should start 01:00 next day, got %s", last.StartTime)
	}
	if last.EndTime != last.StartTime.Add(SlotDuration) {
		t.Errorf("slot must span exactly %s, got %s", SlotDuration, last.EndTime.Sub(last.StartTime))
	}
}

func TestEnumerate_OrderingPutsAfterMidnightFirst(t *testing.T) {
	d := day(2024, time.June, 10)
	slots := Enumerate(d, nil, utc)

	if len(slots) != SlotsPerDay {
		t.Fatalf("expected all %d slots available, got %d", SlotsPerDay, len(slots))
	}

	var hours []int
	for _, s := range slots {
		hours = append(hours, s.StartHour)
	}

	expected := []int{0, 1, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}
	if !reflect.DeepEqual(hours, expected) {
		t.Errorf("unexpected slot ordering:\n got %v\nwant %v", hours, expected)
	}

	if slots[0].FormattedStartTime != "00:00" || slots[0].FormattedEndTime != "00:59" {
		t.Errorf("unexpected display strings: %q - %q", slots[0].FormattedStartTime, slots[0].FormattedEndTime)
	}
}

func TestEnumerate_MarksOverlappingSlotsUnavailable(t *testing.T) {
	d := day(2024, time.June, 10)
	nineToTen := booking(
		time.Date(2024, time.June, 10, 9, 0, 0, 0, utc),
		time.Date(2024, time.June, 10, 9, 59, 59, 0, utc),
	)

	slots := Enumerate(d, []*model.Booking{nineToTen}, utc)

	if len(slots) != SlotsPerDay-1 {
		t.Fatalf("expected %d slots after filtering, got %d", SlotsPerDay-1, len(slots))
	}
	for _, s := range slots {
		if s.StartHour == 9 {
			t.Errorf("09:00 slot should have been filtered out")
		}
	}
}

func TestEnumerate_BoundarySlotStaysAvailable(t *testing.T) {
	// A booking ending 08:59:59 must not consume the 09:00:00 slot.
	d := day(2024, time.June, 10)
	eightToNine := booking(
		time.Date(2024, time.June, 10, 8, 0, 0, 0, utc),
		time.Date(2024, time.June, 10, 8, 59, 59, 0, utc),
	)

	slots := Enumerate(d, []*model.Booking{eightToNine}, utc)

	found := false
	for _, s := range slots {
		if s.StartHour == 8 {
			t.Errorf("08:00 slot should be unavailable")
		}
		if s.StartHour == 9 {
			found = true
		}
	}
	if !found {
		t.Errorf("09:00 slot should remain available when the previous slot is booked")
	}
}

func TestEnumerate_FullContainmentIsUnavailable(t *testing.T) {
	// A long booking swallowing several slots marks each of them.
	d := day(2024, time.June, 10)
	long := booking(
		time.Date(2024, time.June, 10, 10, 0, 0, 0, utc),
		time.Date(2024, time.June, 10, 12, 59, 59, 0, utc),
	)

	slots := Enumerate(d, []*model.Booking{long}, utc)
	for _, s := range slots {
		if s.StartHour >= 10 && s.StartHour <= 12 {
			t.Errorf("hour %d slot should be unavailable inside a containing booking", s.StartHour)
		}
	}
}

func TestEnumerate_Idempotent(t *testing.T) {
	d := day(2024, time.June, 10)
	existing := []*model.Booking{booking(
		time.Date(2024, time.June, 10, 14, 0, 0, 0, utc),
		time.Date(2024, time.June, 10, 14, 59, 59, 0, utc),
	)}

	first := Enumerate(d, existing, utc)
	second := Enumerate(d, existing, utc)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs must produce identical output")
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, time.June, 10, 9, 0, 0, 0, utc)
	tests := []struct {
		name               string
		newStart, newEnd   time.Time
		oldStart, oldEnd   time.Time
		want               bool
	}{
		{
			name:     "identical intervals",
			newStart: base, newEnd: base.Add(SlotDuration),
			oldStart: base, oldEnd: base.Add(SlotDuration),
			want: true,
		},
		{
			name:     "new starts inside existing",
			newStart: base.Add(30 * time.Minute), newEnd: base.Add(90 * time.Minute),
			oldStart: base, oldEnd: base.Add(SlotDuration),
			want: true,
		},
		{
			name:     "new ends inside existing",
			newStart: base.Add(-30 * time.Minute), newEnd: base.Add(30 * time.Minute),
			oldStart: base, oldEnd: base.Add(SlotDuration),
			want: true,
		},
		{
			name:     "new contains existing",
			newStart: base.Add(-time.Hour), newEnd: base.Add(3 * time.Hour),
			oldStart: base, oldEnd: base.Add(SlotDuration),
			want: true,
		},
		{
			name:     "new starts exactly when existing ends",
			newStart: base.Add(time.Hour), newEnd: base.Add(time.Hour + SlotDuration),
			oldStart: base, oldEnd: base.Add(SlotDuration),
			want: false,
		},
		{
			name:     "new ends one second before existing starts",
			newStart: base.Add(-time.Hour), newEnd: base.Add(-time.Hour + SlotDuration),
			oldStart: base, oldEnd: base.Add(SlotDuration),
			want: false,
		},
		{
			name:     "disjoint",
			newStart: base.Add(5 * time.Hour), newEnd: base.Add(5*time.Hour + SlotDuration),
			oldStart: base, oldEnd: base.Add(SlotDuration),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.newStart, tt.newEnd, tt.oldStart, tt.oldEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCutoffReached(t *testing.T) {
	monday := day(2024, time.June, 10)
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "one minute before cutoff",
			now:  time.Date(2024, time.June, 9, 21, 59, 0, 0, utc),
			want: false,
		},
		{
			name: "cutoff sharp is inclusive",
			now:  time.Date(2024, time.June, 9, 22, 0, 0, 0, utc),
			want: true,
		},
		{
			name: "after cutoff",
			now:  time.Date(2024, time.June, 9, 23, 30, 0, 0, utc),
			want: true,
		},
		{
			name: "same day",
			now:  time.Date(2024, time.June, 10, 9, 0, 0, 0, utc),
			want: true,
		},
		{
			name: "two days early",
			now:  time.Date(2024, time.June, 8, 23, 0, 0, 0, utc),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CutoffReached(monday, tt.now, utc); got != tt.want {
				t.Errorf("CutoffReached(%s) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDailyQuota(t *testing.T) {
	if q := DailyQuota(day(2024, time.June, 10), utc); q != WeekdayQuota {
		t.Errorf("Monday quota = %d, want %d", q, WeekdayQuota)
	}
	if q := DailyQuota(day(2024, time.June, 15), utc); q != WeekendQuota {
		t.Errorf("Saturday quota = %d, want %d", q, WeekendQuota)
	}
	if q := DailyQuota(day(2024, time.June, 16), utc); q != WeekendQuota {
		t.Errorf("Sunday quota = %d, want %d", q, WeekendQuota)
	}
}

func TestValidShape(t *testing.T) {
	start := time.Date(2024, time.June, 10, 9, 0, 0, 0, utc)
	tests := []struct {
		name string
		end  time.Time
		want bool
	}{
		{"exact 59m59s", start.Add(SlotDuration), true},
		{"one second short", start.Add(SlotDuration - time.Second), true},
		{"one second long", start.Add(SlotDuration + time.Second), true},
		{"45 minutes", start.Add(45 * time.Minute), false},
		{"full hour plus", start.Add(time.Hour + 2*time.Second), false},
		{"two hours", start.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidShape(start, tt.end); got != tt.want {
				t.Errorf("ValidShape() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartsOnHour(t *testing.T) {
	if !StartsOnHour(time.Date(2024, time.June, 10, 9, 0, 0, 0, utc), utc) {
		t.Errorf("09:00:00 should be a round hour")
	}
	if StartsOnHour(time.Date(2024, time.June, 10, 9, 15, 0, 0, utc), utc) {
		t.Errorf("09:15:00 should not be a round hour")
	}
	if StartsOnHour(time.Date(2024, time.June, 10, 9, 0, 30, 0, utc), utc) {
		t.Errorf("09:00:30 should not be a round hour")
	}
}

func TestWindows(t *testing.T) {
	d := day(2024, time.June, 10)

	start, end := DayWindow(d, utc)
	if start != time.Date(2024, time.June, 10, 0, 0, 0, 0, utc) {
		t.Errorf("day window start = %s", start)
	}
	if end != time.Date(2024, time.June, 11, 2, 0, 0, 0, utc) {
		t.Errorf("day window end = %s", end)
	}

	start, end = OperatingWindow(d, utc)
	if start != time.Date(2024, time.June, 10, 8, 0, 0, 0, utc) {
		t.Errorf("operating window start = %s", start)
	}
	if end != time.Date(2024, time.June, 11, 2, 0, 0, 0, utc) {
		t.Errorf("operating window end = %s", end)
	}
}
