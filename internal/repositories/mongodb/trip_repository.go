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

type tripRepository struct {
	collection *mongo.Collection
}

func NewTripRepository(db *mongo.Database) interfaces.TripRepository {
	return &tripRepository{
		collection: db.Collection("trips"),
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()

	if trip.TrackingCode == "" {
		trip.TrackingCode = utils.GenerateTrackingCode(utils.TrackingPrefixTrip)
	}
	if trip.Status == "" {
		trip.Status = models.TripStatusPending
	}
	trip.LeaveDate = utils.DateOnly(trip.LeaveDate)

	_, err := r.collection.InsertOne(ctx, trip)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicateLeaveDate
		}
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

func (r *tripRepository) CreateMany(ctx context.Context, trips []*models.Trip) error {
	if len(trips) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(trips))
	for _, trip := range trips {
		trip.ID = primitive.NewObjectID()
		trip.CreatedAt = time.Now()
		trip.UpdatedAt = time.Now()
		if trip.TrackingCode == "" {
			trip.TrackingCode = utils.GenerateTrackingCode(utils.TrackingPrefixTrip)
		}
		if trip.Status == "" {
			trip.Status = models.TripStatusPending
		}
		trip.LeaveDate = utils.DateOnly(trip.LeaveDate)
		docs = append(docs, trip)
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicateLeaveDate
		}
		return fmt.Errorf("failed to create trips: %w", err)
	}

	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	var trip models.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return &trip, nil
}

func (r *tripRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *tripRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *tripRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error) {
	return r.findTrips(ctx, bson.M{"plan_id": planID})
}

func (r *tripRepository) GetPendingByPlanID(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error) {
	return r.findTrips(ctx, bson.M{
		"plan_id": planID,
		"status":  models.TripStatusPending,
	})
}

func (r *tripRepository) LeaveDatesByPlanID(ctx context.Context, planID primitive.ObjectID) (map[time.Time]bool, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"plan_id": planID},
		options.Find().SetProjection(bson.M{"leave_date": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to project trip leave dates: %w", err)
	}
	defer cursor.Close(ctx)

	dates := make(map[time.Time]bool)
	for cursor.Next(ctx) {
		var doc struct {
			LeaveDate time.Time `bson:"leave_date"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode trip leave date: %w", err)
		}
		dates[utils.DateOnly(doc.LeaveDate)] = true
	}

	return dates, nil
}

func (r *tripRepository) UpdatePendingByPlanID(ctx context.Context, planID primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"plan_id": planID, "status": models.TripStatusPending},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to propagate plan fields to pending trips: %w", err)
	}

	return nil
}

func (r *tripRepository) DeletePendingByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"plan_id": planID,
		"status":  models.TripStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete pending trips: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *tripRepository) DeletePendingBefore(ctx context.Context, planID primitive.ObjectID, date time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"plan_id":    planID,
		"status":     models.TripStatusPending,
		"leave_date": bson.M{"$lt": utils.DateOnly(date)},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale pending trips: %w", err)
	}

	return result.DeletedCount, nil
}

// IncrementPassengers is the serialization point for seat accounting. The
// guard lives in the filter, so the read-validate-write sequence is a
// single document operation and two concurrent adds can never both pass
// the capacity check.
func (r *tripRepository) IncrementPassengers(ctx context.Context, id primitive.ObjectID, delta int) (*models.Trip, error) {
	filter := bson.M{"_id": id}
	if delta > 0 {
		filter["available_seats"] = bson.M{"$gte": delta}
	} else if delta < 0 {
		filter["passengers_count"] = bson.M{"$gte": -delta}
	}

	update := bson.M{
		"$inc": bson.M{
			"passengers_count": delta,
			"available_seats":  -delta,
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	var trip models.Trip
	err := r.collection.FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&trip)
	if err == nil {
		return &trip, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to move passenger count: %w", err)
	}

	// The guard failed or the trip does not exist; look once more to
	// report which.
	if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
		return nil, lookupErr
	}
	if delta > 0 {
		return nil, interfaces.ErrCapacityExceeded
	}
	return nil, interfaces.ErrNoPassengers
}

func (r *tripRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TripStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *tripRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	return r.Update(ctx, id, map[string]interface{}{"rating": rating})
}

func (r *tripRepository) AverageRatingByTransporterID(ctx context.Context, transporterID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"transporter_id": transporterID}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate transporter rating: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Rating float64 `bson:"rating"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("failed to decode transporter rating: %w", err)
		}
	}

	return result.Rating, nil
}

func (r *tripRepository) FindByLeaveDate(ctx context.Context, leaveDate time.Time, minSeats int) ([]*models.Trip, error) {
	return r.findTrips(ctx, bson.M{
		"leave_date":      utils.DateOnly(leaveDate),
		"available_seats": bson.M{"$gte": minSeats},
		"status":          bson.M{"$ne": models.TripStatusCancelled},
	})
}

func (r *tripRepository) findTrips(ctx context.Context, filter bson.M) ([]*models.Trip, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "leave_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*models.Trip
	for cursor.Next(ctx) {
		var trip models.Trip
		if err := cursor.Decode(&trip); err != nil {
			return nil, fmt.Errorf("failed to decode trip: %w", err)
		}
		trips = append(trips, &trip)
	}

	return trips, nil
}
