package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleKind string

const (
	VehicleKindBike  VehicleKind = "bike"
	VehicleKindBus   VehicleKind = "bus"
	VehicleKindTrain VehicleKind = "train"
	VehicleKindPlane VehicleKind = "plane"
)

// Specification flag names accepted in search preferences.
const (
	SpecWithAC   = "with_ac"
	SpecWithTV   = "with_tv"
	SpecWithTint = "with_tint"
)

// VehicleSpecifications is the fixed set of named comfort flags a vehicle
// carries. The set is closed: unknown flag names are rejected at the search
// boundary rather than stored.
type VehicleSpecifications struct {
	WithAC   bool `json:"with_ac" bson:"with_ac"`
	WithTV   bool `json:"with_tv" bson:"with_tv"`
	WithTint bool `json:"with_tint" bson:"with_tint"`
}

// Flag returns the value of a named specification flag.
func (s VehicleSpecifications) Flag(name string) (bool, bool) {
	switch name {
	case SpecWithAC:
		return s.WithAC, true
	case SpecWithTV:
		return s.WithTV, true
	case SpecWithTint:
		return s.WithTint, true
	}
	return false, false
}

// IsSpecificationKey reports whether name is one of the known flag names.
func IsSpecificationKey(name string) bool {
	_, ok := VehicleSpecifications{}.Flag(name)
	return ok
}

// Matches reports whether every requested preference flag equals the
// vehicle's value for that flag. Unknown names never match.
func (s VehicleSpecifications) Matches(preferences map[string]bool) bool {
	for name, want := range preferences {
		got, ok := s.Flag(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

type Vehicle struct {
	ID             primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	TransporterID  primitive.ObjectID    `json:"transporter_id" bson:"transporter_id" validate:"required"`
	Name           string                `json:"name" bson:"name" validate:"required,max=100"`
	Kind           VehicleKind           `json:"kind" bson:"kind" validate:"required,oneof=bike bus train plane"`
	Tag            string                `json:"tag" bson:"tag"`
	PlateNumber    string                `json:"plate_number" bson:"plate_number" validate:"required,max=20"`
	Capacity       int                   `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
	Active         bool                  `json:"active" bson:"active"`
	Verified       bool                  `json:"verified" bson:"verified"`
	Specifications VehicleSpecifications `json:"specifications" bson:"specifications"`
	CreatedAt      time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at" bson:"updated_at"`
}
