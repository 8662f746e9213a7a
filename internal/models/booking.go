package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusUnconfirmed BookingStatus = "unconfirmed"
	BookingStatusConfirmed   BookingStatus = "confirmed"
	BookingStatusCancelled   BookingStatus = "cancelled"
)

// Booking links a trip to the user that booked it. Confirming a booking
// marks the trip as started, which permanently shields the trip from
// window stabilization deletes.
type Booking struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TrackingCode string             `json:"tracking_code" bson:"tracking_code"`
	TripID       primitive.ObjectID `json:"trip_id" bson:"trip_id" validate:"required"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Status       BookingStatus      `json:"status" bson:"status"`
	Rating       float64            `json:"rating" bson:"rating" validate:"rating"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Passenger is one traveller attached to a booking. Adding or removing a
// passenger is the mutation that moves the trip's passenger count.
type Passenger struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingID          primitive.ObjectID `json:"booking_id" bson:"booking_id" validate:"required"`
	FirstName          string             `json:"first_name" bson:"first_name" validate:"required,max=30"`
	LastName           string             `json:"last_name" bson:"last_name" validate:"required,max=30"`
	Email              string             `json:"email" bson:"email" validate:"omitempty,email"`
	Phone              string             `json:"phone" bson:"phone" validate:"omitempty,max=20"`
	MedicalInformation string             `json:"medical_information" bson:"medical_information"`
	SendTips           bool               `json:"send_tips" bson:"send_tips"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
}

// FullName returns "Last First" the way tickets print it.
func (p *Passenger) FullName() string {
	return p.LastName + " " + p.FirstName
}
