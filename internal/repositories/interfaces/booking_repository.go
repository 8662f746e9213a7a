package interfaces

import (
	"context"

	"tripapi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	GetByTripID(ctx context.Context, tripID primitive.ObjectID) ([]*models.Booking, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error)
	CountConfirmedByTripID(ctx context.Context, tripID primitive.ObjectID) (int64, error)
	AverageRatingByTripID(ctx context.Context, tripID primitive.ObjectID) (float64, error)

	// Passenger records hang off bookings.
	CreatePassenger(ctx context.Context, passenger *models.Passenger) error
	GetPassengerByID(ctx context.Context, id primitive.ObjectID) (*models.Passenger, error)
	GetPassengersByBookingID(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Passenger, error)
	DeletePassenger(ctx context.Context, id primitive.ObjectID) error
}
