package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// DefaultBookingTimezone is the single reference timezone for every
	// calendar-day, weekend, and cutoff computation. Deployments that serve
	// one site should set BOOKING_TIMEZONE to that site's IANA zone.
	DefaultBookingTimezone = "UTC"

	DefaultSlotLockTTL = 10 * time.Second

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingEventTopic = "roomly.bookings"
)
