package model

import "time"

// BookingLock is an advisory lock keyed by slot coordinates. Inserting it into
// a collection with a unique _id closes the check-then-create race between two
// requests for the same room and start time; ExpiresAt backs a TTL index so an
// abandoned lock cannot wedge the slot.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
