package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripapi/internal/models"
	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type vehicleRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewVehicleRepository(db *mongo.Database, cache CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
		cache:      cache,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	// Normalize the plate and the tag
	vehicle.PlateNumber = strings.ToUpper(vehicle.PlateNumber)
	vehicle.Tag = utils.Slugify(vehicle.Tag)

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	if vehicle.Active {
		r.cacheVehicle(ctx, vehicle)
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	// Try cache first
	if vehicle := r.getVehicleFromCache(ctx, id.Hex()); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.Active {
		r.cacheVehicle(ctx, &vehicle)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Vehicle, error) {
	vehicles := make(map[primitive.ObjectID]*models.Vehicle, len(ids))
	if len(ids) == 0 {
		return vehicles, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles[vehicle.ID] = &vehicle
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if plate, exists := updates["plate_number"]; exists {
		if plateStr, ok := plate.(string); ok {
			updates["plate_number"] = strings.ToUpper(plateStr)
		}
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateVehicleCache(ctx, id.Hex())

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateVehicleCache(ctx, id.Hex())

	return nil
}

func (r *vehicleRepository) GetByTransporterID(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Vehicle, error) {
	filter := bson.M{"transporter_id": transporterID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicles by transporter ID: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) cacheVehicle(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, utils.CacheVehiclePrefix+vehicle.ID.Hex(), vehicle, vehicleCacheTTL)
}

func (r *vehicleRepository) getVehicleFromCache(ctx context.Context, id string) *models.Vehicle {
	if r.cache == nil {
		return nil
	}
	var vehicle models.Vehicle
	if err := r.cache.Get(ctx, utils.CacheVehiclePrefix+id, &vehicle); err != nil {
		return nil
	}
	return &vehicle
}

func (r *vehicleRepository) invalidateVehicleCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheVehiclePrefix+id)
}
