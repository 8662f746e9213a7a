package mongodb

import (
	"context"
	"fmt"
	"time"

	"tripapi/internal/models"
	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
	passengers *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		passengers: db.Collection("passengers"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	if booking.TrackingCode == "" {
		booking.TrackingCode = utils.GenerateTrackingCode(utils.TrackingPrefixBooking)
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusUnconfirmed
	}

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *bookingRepository) GetByTripID(ctx context.Context, tripID primitive.ObjectID) ([]*models.Booking, error) {
	return r.findBookings(ctx, bson.M{"trip_id": tripID})
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	return r.findBookings(ctx, bson.M{"user_id": userID})
}

func (r *bookingRepository) CountConfirmedByTripID(ctx context.Context, tripID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"trip_id": tripID,
		"status":  models.BookingStatusConfirmed,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count confirmed bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) AverageRatingByTripID(ctx context.Context, tripID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"trip_id": tripID}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate booking ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Rating float64 `bson:"rating"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("failed to decode booking rating: %w", err)
		}
	}

	return result.Rating, nil
}

func (r *bookingRepository) CreatePassenger(ctx context.Context, passenger *models.Passenger) error {
	passenger.ID = primitive.NewObjectID()
	passenger.CreatedAt = time.Now()

	_, err := r.passengers.InsertOne(ctx, passenger)
	if err != nil {
		return fmt.Errorf("failed to create passenger: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetPassengerByID(ctx context.Context, id primitive.ObjectID) (*models.Passenger, error) {
	var passenger models.Passenger
	err := r.passengers.FindOne(ctx, bson.M{"_id": id}).Decode(&passenger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get passenger: %w", err)
	}

	return &passenger, nil
}

func (r *bookingRepository) GetPassengersByBookingID(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Passenger, error) {
	cursor, err := r.passengers.Find(
		ctx,
		bson.M{"booking_id": bookingID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find passengers: %w", err)
	}
	defer cursor.Close(ctx)

	var passengers []*models.Passenger
	for cursor.Next(ctx) {
		var passenger models.Passenger
		if err := cursor.Decode(&passenger); err != nil {
			return nil, fmt.Errorf("failed to decode passenger: %w", err)
		}
		passengers = append(passengers, &passenger)
	}

	return passengers, nil
}

func (r *bookingRepository) DeletePassenger(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.passengers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete passenger: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *bookingRepository) findBookings(ctx context.Context, filter bson.M) ([]*models.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
