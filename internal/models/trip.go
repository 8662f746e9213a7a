package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripStatus string

const (
	TripStatusPending   TripStatus = "pending"
	TripStatusStarted   TripStatus = "started"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip is a single date-bound, bookable trip. It usually derives from a
// TripPlan but can exist on its own; after creation its attributes are
// independent of the plan except for the propagation rules the plan
// service applies.
type Trip struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TrackingCode string              `json:"tracking_code" bson:"tracking_code"`
	PlanID       *primitive.ObjectID `json:"plan_id" bson:"plan_id"`

	TransporterID primitive.ObjectID  `json:"transporter_id" bson:"transporter_id" validate:"required"`
	VehicleID     primitive.ObjectID  `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	DriverID      *primitive.ObjectID `json:"driver_id" bson:"driver_id"`

	TripType       TripType `json:"trip_type" bson:"trip_type" validate:"required,oneof=intracity intercity interstate international"`
	Origin         string   `json:"origin" bson:"origin" validate:"required,max=255"`
	Destination    string   `json:"destination" bson:"destination" validate:"required,max=255"`
	BoardingPoint  string   `json:"boarding_point" bson:"boarding_point" validate:"required,max=255"`
	AlightingPoint string   `json:"alighting_point" bson:"alighting_point" validate:"required,max=255"`

	TakeOffTime     string  `json:"take_off_time" bson:"take_off_time" validate:"required,take_off_time"`
	DurationMinutes int     `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=1"`
	Amount          float64 `json:"amount" bson:"amount" validate:"required,min=0"`

	LeaveDate       time.Time  `json:"leave_date" bson:"leave_date" validate:"required"`
	PassengersCount int        `json:"passengers_count" bson:"passengers_count" validate:"min=0"`
	AvailableSeats  int        `json:"available_seats" bson:"available_seats" validate:"min=0"`
	Status          TripStatus `json:"status" bson:"status"`
	Rating          float64    `json:"rating" bson:"rating"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasStarted reports whether the trip has at least one confirmed booking.
// Booking confirmation flips Status away from pending in the same
// transaction, so the status is authoritative.
func (t *Trip) HasStarted() bool {
	return t.Status != TripStatusPending
}

// RecomputeAvailableSeats applies the availability rule
// available_seats = capacity - passengers_count. It reports false and
// leaves the trip untouched when the result would be negative.
func (t *Trip) RecomputeAvailableSeats(capacity int) bool {
	seats := capacity - t.PassengersCount
	if seats < 0 {
		return false
	}
	t.AvailableSeats = seats
	return true
}

// ArrivalTime is the leave date combined with the take-off time plus the
// trip duration.
func (t *Trip) ArrivalTime() time.Time {
	takeOff, err := time.Parse("15:04", t.TakeOffTime)
	if err != nil {
		return t.LeaveDate
	}
	return time.Date(
		t.LeaveDate.Year(), t.LeaveDate.Month(), t.LeaveDate.Day(),
		takeOff.Hour(), takeOff.Minute(), 0, 0, t.LeaveDate.Location(),
	).Add(time.Duration(t.DurationMinutes) * time.Minute)
}
