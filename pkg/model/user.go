package model

import "time"

// User is a name-only record, not an authentication identity. IDs are
// client-supplied opaque strings so that a booking request can reference a
// user that does not exist yet; the write path provisions it on first use.
type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,min=1,max=100"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
