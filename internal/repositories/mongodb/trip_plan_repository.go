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

type tripPlanRepository struct {
	collection *mongo.Collection
}

func NewTripPlanRepository(db *mongo.Database) interfaces.TripPlanRepository {
	return &tripPlanRepository{
		collection: db.Collection("trip_plans"),
	}
}

func (r *tripPlanRepository) Create(ctx context.Context, plan *models.TripPlan) error {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	if plan.TrackingCode == "" {
		plan.TrackingCode = utils.GenerateTrackingCode(utils.TrackingPrefixTripPlan)
	}

	_, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to create trip plan: %w", err)
	}

	return nil
}

func (r *tripPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripPlan, error) {
	var plan models.TripPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip plan: %w", err)
	}

	return &plan, nil
}

func (r *tripPlanRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update trip plan: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *tripPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip plan: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *tripPlanRepository) GetAll(ctx context.Context) ([]*models.TripPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list trip plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []*models.TripPlan
	for cursor.Next(ctx) {
		var plan models.TripPlan
		if err := cursor.Decode(&plan); err != nil {
			return nil, fmt.Errorf("failed to decode trip plan: %w", err)
		}
		plans = append(plans, &plan)
	}

	return plans, nil
}

func (r *tripPlanRepository) GetByTransporterID(ctx context.Context, transporterID primitive.ObjectID) ([]*models.TripPlan, error) {
	filter := bson.M{"transporter_id": transporterID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find trip plans by transporter ID: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []*models.TripPlan
	for cursor.Next(ctx) {
		var plan models.TripPlan
		if err := cursor.Decode(&plan); err != nil {
			return nil, fmt.Errorf("failed to decode trip plan: %w", err)
		}
		plans = append(plans, &plan)
	}

	return plans, nil
}
