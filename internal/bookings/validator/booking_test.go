package validator

import (
	"testing"
	"time"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.FormatJSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(log, time.UTC)
}

func intPtr(n int) *int {
	return &n
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		UserID:      "user-1",
		RoomID:      "507f1f77bcf86cd799439011",
		Date:        "2024-06-10",
		StartHour:   intPtr(10),
		StartMinute: intPtr(0),
		EndHour:     intPtr(10),
		EndMinute:   intPtr(59),
	}
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		mutate    func(*model.BookingRequest)
		wantError bool
	}{
		{
			name:      "valid request",
			mutate:    func(r *model.BookingRequest) {},
			wantError: false,
		},
		{
			name:      "midnight start hour survives required check",
			mutate:    func(r *model.BookingRequest) { r.StartHour = intPtr(0); r.EndHour = intPtr(0) },
			wantError: false,
		},
		{
			name:      "missing user id",
			mutate:    func(r *model.BookingRequest) { r.UserID = "" },
			wantError: true,
		},
		{
			name:      "missing room id",
			mutate:    func(r *model.BookingRequest) { r.RoomID = "" },
			wantError: true,
		},
		{
			name:      "room id not an object id",
			mutate:    func(r *model.BookingRequest) { r.RoomID = "room-42" },
			wantError: true,
		},
		{
			name:      "missing start hour",
			mutate:    func(r *model.BookingRequest) { r.StartHour = nil },
			wantError: true,
		},
		{
			name:      "hour out of range",
			mutate:    func(r *model.BookingRequest) { r.StartHour = intPtr(24) },
			wantError: true,
		},
		{
			name:      "date not in calendar format",
			mutate:    func(r *model.BookingRequest) { r.Date = "10-06-2024" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := v.ValidateRequest(req)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateRequest() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !apperrors.IsAppError(err) {
				t.Errorf("ValidateRequest() returned non-AppError: %v", err)
			}
		})
	}
}

// Monday 2024-06-10 in UTC; bookable from Sunday 22:00.
var (
	monday   = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	openNow  = time.Date(2024, 6, 9, 22, 0, 0, 0, time.UTC)
)

func slotOn(day time.Time, hour int) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	return start, start.Add(59*time.Minute + 59*time.Second)
}

func admission(day time.Time, hour int, now time.Time) AdmissionRequest {
	start, end := slotOn(day, hour)
	return AdmissionRequest{
		Day:   day,
		Start: start,
		End:   end,
		Now:   now,
	}
}

func wantMessage(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected rejection %q, got nil", msg)
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Message != msg {
		t.Errorf("message = %q, want %q", appErr.Message, msg)
	}
}

func TestAdmitCutoff(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "one minute before cutoff is rejected",
			now:  time.Date(2024, 6, 9, 21, 59, 0, 0, time.UTC),
			want: MsgCutoff,
		},
		{
			name: "exactly at cutoff is admitted",
			now:  time.Date(2024, 6, 9, 22, 0, 0, 0, time.UTC),
		},
		{
			name: "same day is admitted",
			now:  time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Admit(admission(monday, 10, tt.now))
			if tt.want == "" {
				if err != nil {
					t.Errorf("Admit() error = %v, want nil", err)
				}
				return
			}
			wantMessage(t, err, tt.want)
		})
	}
}

func TestAdmitSlotShape(t *testing.T) {
	v := newTestValidator()

	req := admission(monday, 10, openNow)
	req.End = req.Start.Add(45 * time.Minute)
	wantMessage(t, v.Admit(req), MsgSlotShape)
}

func TestAdmitRoundHour(t *testing.T) {
	v := newTestValidator()

	req := admission(monday, 10, openNow)
	req.Start = req.Start.Add(30 * time.Minute)
	req.End = req.Start.Add(59*time.Minute + 59*time.Second)
	wantMessage(t, v.Admit(req), MsgRoundHour)
}

func TestAdmitQuota(t *testing.T) {
	v := newTestValidator()

	booking := func(id string, day time.Time, hour int) *model.Booking {
		start, end := slotOn(day, hour)
		return &model.Booking{ID: id, StartTime: start, EndTime: end}
	}

	t.Run("weekday second booking rejected", func(t *testing.T) {
		req := admission(monday, 14, openNow)
		req.UserBookings = []*model.Booking{booking("b1", monday, 10)}
		wantMessage(t, v.Admit(req), MsgWeekdayQuota)
	})

	t.Run("weekend second booking admitted", func(t *testing.T) {
		req := admission(saturday, 14, time.Date(2024, 6, 14, 22, 0, 0, 0, time.UTC))
		req.UserBookings = []*model.Booking{booking("b1", saturday, 10)}
		if err := v.Admit(req); err != nil {
			t.Errorf("Admit() error = %v, want nil", err)
		}
	})

	t.Run("weekend third booking rejected", func(t *testing.T) {
		req := admission(saturday, 16, time.Date(2024, 6, 14, 22, 0, 0, 0, time.UTC))
		req.UserBookings = []*model.Booking{
			booking("b1", saturday, 10),
			booking("b2", saturday, 14),
		}
		wantMessage(t, v.Admit(req), MsgWeekendQuota)
	})

	t.Run("excluded booking frees its quota seat", func(t *testing.T) {
		req := admission(monday, 14, openNow)
		req.ExcludeBookingID = "b1"
		req.UserBookings = []*model.Booking{booking("b1", monday, 10)}
		if err := v.Admit(req); err != nil {
			t.Errorf("Admit() error = %v, want nil", err)
		}
	})
}

func TestAdmitRoomConflict(t *testing.T) {
	v := newTestValidator()

	overlapStart, overlapEnd := slotOn(monday, 10)
	adjacentStart, adjacentEnd := slotOn(monday, 9)

	t.Run("overlapping booking rejected", func(t *testing.T) {
		req := admission(monday, 10, openNow)
		req.RoomBookings = []*model.Booking{{ID: "b1", StartTime: overlapStart, EndTime: overlapEnd}}
		wantMessage(t, v.Admit(req), MsgRoomConflict)
	})

	t.Run("adjacent booking admitted", func(t *testing.T) {
		req := admission(monday, 10, openNow)
		req.RoomBookings = []*model.Booking{{ID: "b1", StartTime: adjacentStart, EndTime: adjacentEnd}}
		if err := v.Admit(req); err != nil {
			t.Errorf("Admit() error = %v, want nil", err)
		}
	})
}
