package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripType string

const (
	TripTypeIntracity     TripType = "intracity"
	TripTypeIntercity     TripType = "intercity"
	TripTypeInterstate    TripType = "interstate"
	TripTypeInternational TripType = "international"
)

// RecurrenceNone means the plan produces a single trip on its start date.
const RecurrenceNone = ""

// TripPlan is a recurring trip template. Creating one expands the recurrence
// rule into concrete Trip documents over the rolling window; editing one
// propagates to, or regenerates, the unstarted trips derived from it.
type TripPlan struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TrackingCode  string              `json:"tracking_code" bson:"tracking_code"`
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

	PreBookedSeats int       `json:"pre_booked_seats" bson:"pre_booked_seats" validate:"min=0"`
	StartDate      time.Time `json:"start_date" bson:"start_date" validate:"required"`
	// Recurring is empty for a one-off plan, the configured everyday
	// keyword, or a lowercase weekday name.
	Recurring string `json:"recurring" bson:"recurring"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// InstanceAt builds the trip this plan produces on leaveDate. The trip
// inherits every shared attribute and starts with the plan's pre-booked
// seat baseline as its passenger count. Available seats are recomputed by
// the caller once the vehicle capacity is known.
func (p *TripPlan) InstanceAt(leaveDate time.Time) *Trip {
	return &Trip{
		PlanID:          &p.ID,
		TransporterID:   p.TransporterID,
		VehicleID:       p.VehicleID,
		DriverID:        p.DriverID,
		TripType:        p.TripType,
		Origin:          p.Origin,
		Destination:     p.Destination,
		BoardingPoint:   p.BoardingPoint,
		AlightingPoint:  p.AlightingPoint,
		TakeOffTime:     p.TakeOffTime,
		DurationMinutes: p.DurationMinutes,
		Amount:          p.Amount,
		LeaveDate:       leaveDate,
		PassengersCount: p.PreBookedSeats,
		Status:          TripStatusPending,
	}
}

// TripPlanUpdate carries a partial edit to a plan. Nil fields are left
// untouched. The service layer inspects which fields are set to decide
// between in-place propagation and regeneration of derived trips.
type TripPlanUpdate struct {
	VehicleID *primitive.ObjectID `json:"vehicle_id,omitempty"`
	DriverID  *primitive.ObjectID `json:"driver_id,omitempty"`

	TripType       *TripType `json:"trip_type,omitempty" validate:"omitempty,oneof=intracity intercity interstate international"`
	Origin         *string   `json:"origin,omitempty" validate:"omitempty,max=255"`
	Destination    *string   `json:"destination,omitempty" validate:"omitempty,max=255"`
	BoardingPoint  *string   `json:"boarding_point,omitempty" validate:"omitempty,max=255"`
	AlightingPoint *string   `json:"alighting_point,omitempty" validate:"omitempty,max=255"`

	TakeOffTime     *string  `json:"take_off_time,omitempty" validate:"omitempty,take_off_time"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	Amount          *float64 `json:"amount,omitempty" validate:"omitempty,min=0"`

	PreBookedSeats *int       `json:"pre_booked_seats,omitempty" validate:"omitempty,min=0"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	Recurring      *string    `json:"recurring,omitempty"`
}

// SharedFields returns the attribute set that template edits push onto
// unstarted trips in place (everything except dates and recurrence).
func (p *TripPlan) SharedFields() map[string]interface{} {
	return map[string]interface{}{
		"transporter_id":   p.TransporterID,
		"vehicle_id":       p.VehicleID,
		"driver_id":        p.DriverID,
		"trip_type":        p.TripType,
		"origin":           p.Origin,
		"destination":      p.Destination,
		"boarding_point":   p.BoardingPoint,
		"alighting_point":  p.AlightingPoint,
		"take_off_time":    p.TakeOffTime,
		"duration_minutes": p.DurationMinutes,
		"amount":           p.Amount,
	}
}
