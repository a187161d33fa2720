package model

import (
	"time"
)

// BookingStatus is modeled as an explicit enum even though only one value is
// reachable today, so cancellation or approval states can be added without a
// breaking change.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
)

type Booking struct {
	ID        string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID    string        `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	UserID    string        `json:"user_id" bson:"user_id" validate:"required,min=1,max=100"`
	StartTime time.Time     `json:"start_time" bson:"start_time" validate:"required"`
	EndTime   time.Time     `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Purpose   string        `json:"purpose,omitempty" bson:"purpose,omitempty" validate:"omitempty,max=500"`
	Status    BookingStatus `json:"status" bson:"status" validate:"required,oneof=confirmed"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the wire form of a create-booking call. The date names a
// calendar day and the hour/minute pairs are clock values on that day; the
// service resolves them to instants in the configured reference timezone.
// Hour and minute fields are pointers so that zero values (midnight slots)
// survive the required-fields check.
type BookingRequest struct {
	UserID      string `json:"user_id" validate:"required,min=1,max=100"`
	RoomID      string `json:"room_id" validate:"required,mongodb"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartHour   *int   `json:"start_hour" validate:"required,min=0,max=23"`
	StartMinute *int   `json:"start_minute" validate:"required,min=0,max=59"`
	EndHour     *int   `json:"end_hour" validate:"required,min=0,max=23"`
	EndMinute   *int   `json:"end_minute" validate:"required,min=0,max=59"`
	Purpose     string `json:"purpose,omitempty" validate:"omitempty,max=500"`

	// ExcludeBookingID is set when the request replaces an existing booking;
	// that booking is left out of the quota count.
	ExcludeBookingID string `json:"exclude_booking_id,omitempty" validate:"omitempty,mongodb"`
}

// BookingFilter narrows booking list queries. All fields are optional.
type BookingFilter struct {
	UserID string
	RoomID string
	Date   string
}
