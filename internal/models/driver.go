package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver is a transporter's driver. A driver must be active and verified
// before it can be referenced by a trip plan.
type Driver struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TrackingCode  string             `json:"tracking_code" bson:"tracking_code"`
	UserID        primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	TransporterID primitive.ObjectID `json:"transporter_id" bson:"transporter_id" validate:"required"`
	FullName      string             `json:"full_name" bson:"full_name" validate:"required,max=100"`
	Verified      bool               `json:"verified" bson:"verified"`
	Active        bool               `json:"active" bson:"active"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
