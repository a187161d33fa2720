package model

import "time"

// Slot is a candidate one-hour booking window, derived on every availability
// query and never persisted. StartHour is the clock hour of the slot start in
// the reference timezone; the formatted strings are what slot pickers render.
type Slot struct {
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	StartHour          int       `json:"start_hour"`
	FormattedStartTime string    `json:"formatted_start_time"`
	FormattedEndTime   string    `json:"formatted_end_time"`
	Available          bool      `json:"-"`
}
