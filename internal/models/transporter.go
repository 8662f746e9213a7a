package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transporter is a partner that owns vehicles, drivers and trip plans.
type Transporter struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Name      string             `json:"name" bson:"name" validate:"required,max=100"`
	SlugName  string             `json:"slug_name" bson:"slug_name"`
	Rating    float64            `json:"rating" bson:"rating"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
