package interfaces

import (
	"context"
	"time"

	"tripapi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	CreateMany(ctx context.Context, trips []*models.Trip) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Plan-scoped queries used by window stabilization and propagation.
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error)
	GetPendingByPlanID(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error)
	LeaveDatesByPlanID(ctx context.Context, planID primitive.ObjectID) (map[time.Time]bool, error)
	UpdatePendingByPlanID(ctx context.Context, planID primitive.ObjectID, updates map[string]interface{}) error
	DeletePendingByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error)
	DeletePendingBefore(ctx context.Context, planID primitive.ObjectID, date time.Time) (int64, error)

	// IncrementPassengers atomically moves passengers_count by delta and
	// available_seats by -delta on one document, guarded so available
	// seats never go negative on add and passengers never go negative on
	// remove. Returns the updated trip, ErrCapacityExceeded when an add
	// hits capacity, ErrNoPassengers when a remove hits zero.
	IncrementPassengers(ctx context.Context, id primitive.ObjectID, delta int) (*models.Trip, error)

	SetStatus(ctx context.Context, id primitive.ObjectID, status models.TripStatus) error
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error
	AverageRatingByTransporterID(ctx context.Context, transporterID primitive.ObjectID) (float64, error)

	// FindByLeaveDate returns trips departing on the given date with at
	// least minSeats available seats; the search service ranks and
	// filters the result further.
	FindByLeaveDate(ctx context.Context, leaveDate time.Time, minSeats int) ([]*models.Trip, error)
}
