package interfaces

import "errors"

// Domain errors shared by repositories and services. Callers match with
// errors.Is; handlers map them onto HTTP status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrCapacityExceeded   = errors.New("vehicle capacity is not enough for passengers")
	ErrNoPassengers       = errors.New("trip has no passengers to remove")
	ErrDuplicateLeaveDate = errors.New("a trip already exists for this plan and leave date")
)
