package utils

import "time"

// Application Constants
const (
	AppName    = "TripAPI"
	AppVersion = "1.0.0"

	// Trip window
	DefaultTripWindowDays = 30

	// Recurrence
	RecurringEveryday = "everyday"

	// Search
	DefaultRankThreshold  = 1.0
	DefaultSearchCacheTTL = 5 * time.Minute

	// Rating
	MinRating = 0.0
	MaxRating = 5.0

	// Tracking code prefixes
	TrackingPrefixTripPlan = "TRPL"
	TrackingPrefixTrip     = "TRIP"
	TrackingPrefixBooking  = "BKG"
	TrackingPrefixDriver   = "DVR"
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheVehiclePrefix     = "vehicle:"
	CacheSearchTripsPrefix = "search_trips:"
)
