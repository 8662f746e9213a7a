package models

import (
	"time"
)

// SearchCriteria is a traveller's trip search. Origin, destination, leave
// date and passenger count are required; the rest narrow the result.
// Preference keys must belong to the vehicle specification set.
type SearchCriteria struct {
	Origin      string    `json:"origin" validate:"required,max=255"`
	Destination string    `json:"destination" validate:"required,max=255"`
	LeaveDate   time.Time `json:"leave_date" validate:"required"`
	Passengers  int       `json:"passengers" validate:"required,min=1"`

	MinTakeOffTime string          `json:"min_take_off_time,omitempty" validate:"omitempty,take_off_time"`
	MaxTakeOffTime string          `json:"max_take_off_time,omitempty" validate:"omitempty,take_off_time"`
	MaxAmount      *float64        `json:"max_amount,omitempty" validate:"omitempty,min=0"`
	VehicleKind    VehicleKind     `json:"vehicle_kind,omitempty" validate:"omitempty,oneof=bike bus train plane"`
	Preferences    map[string]bool `json:"preferences,omitempty"`
}

// RankedTrip pairs a trip with its origin and destination relevance
// scores. Results are ordered by origin rank, then destination rank.
type RankedTrip struct {
	Trip            *Trip   `json:"trip"`
	OriginRank      float64 `json:"origin_rank"`
	DestinationRank float64 `json:"destination_rank"`
}
