package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
	"roomly/pkg/timeslot"
)

// Rejection messages are part of the external contract; slot pickers show
// them verbatim.
const (
	MsgMissingFields = "Missing required fields"
	MsgCutoff        = "Bookings can only be made after 10pm the previous day"
	MsgSlotShape     = "Booking slots must be exactly 59 minutes and 59 seconds"
	MsgRoundHour     = "Bookings must start at round hours (e.g., 7:00, 8:00)"
	MsgWeekendQuota  = "You can only book up to 2 slots on weekends"
	MsgWeekdayQuota  = "You can only book 1 slot per day on weekdays"
	MsgRoomConflict  = "Room is already booked for this time"
)

// AdmissionRequest carries everything the admission rules need, pre-fetched
// by the service so the checks stay pure functions over their inputs.
type AdmissionRequest struct {
	// Day is midnight of the requested calendar day in the reference zone.
	Day   time.Time
	Start time.Time
	End   time.Time
	Now   time.Time

	// ExcludeBookingID names a booking being replaced; it is left out of the
	// quota count.
	ExcludeBookingID string

	// UserBookings are the requester's bookings inside the operating window;
	// RoomBookings are the room's bookings inside the day window.
	UserBookings []*model.Booking
	RoomBookings []*model.Booking
}

type BookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
	loc      *time.Location
}

func NewBookingValidator(log *logger.Logger, loc *time.Location) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		log:      log,
		loc:      loc,
	}
}

// ValidateRequest checks the wire-level shape of a create request: required
// fields, id formats, hour/minute ranges.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return apperrors.InvalidInput(MsgMissingFields).
				WithDetails(map[string]any{"fields": translateValidationErrors(validationErrs)})
		}
		return apperrors.InvalidInput(MsgMissingFields)
	}
	return nil
}

// Admit applies the admission rules in order; the first failing rule wins.
func (v *BookingValidator) Admit(req AdmissionRequest) error {
	if !timeslot.CutoffReached(req.Day, req.Now, v.loc) {
		return apperrors.Validation(MsgCutoff, nil)
	}

	if !timeslot.ValidShape(req.Start, req.End) {
		return apperrors.Validation(MsgSlotShape, nil)
	}

	if !timeslot.StartsOnHour(req.Start, v.loc) {
		return apperrors.Validation(MsgRoundHour, nil)
	}

	if err := v.checkQuota(req); err != nil {
		return err
	}

	for _, b := range req.RoomBookings {
		if timeslot.Overlaps(req.Start, req.End, b.StartTime, b.EndTime) {
			return apperrors.Conflict(MsgRoomConflict)
		}
	}

	return nil
}

func (v *BookingValidator) checkQuota(req AdmissionRequest) error {
	count := 0
	for _, b := range req.UserBookings {
		if req.ExcludeBookingID != "" && b.ID == req.ExcludeBookingID {
			continue
		}
		count++
	}

	quota := timeslot.DailyQuota(req.Day, v.loc)
	if count < quota {
		return nil
	}

	msg := MsgWeekdayQuota
	if timeslot.IsWeekend(req.Day, v.loc) {
		msg = MsgWeekendQuota
	}
	v.log.Debug("Booking quota exceeded",
		"day", req.Day.Format(timeslot.DayFormat),
		"existing", count,
		"quota", quota,
	)
	return apperrors.Validation(msg, map[string]any{
		"existing_bookings": count,
		"daily_quota":       quota,
	})
}

func translateValidationErrors(errs validator.ValidationErrors) []string {
	var messages []string

	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		default:
			message = err.Error()
		}
		messages = append(messages, message)
	}

	return messages
}
