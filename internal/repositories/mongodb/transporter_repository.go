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
)

type transporterRepository struct {
	collection *mongo.Collection
}

func NewTransporterRepository(db *mongo.Database) interfaces.TransporterRepository {
	return &transporterRepository{
		collection: db.Collection("transporters"),
	}
}

func (r *transporterRepository) Create(ctx context.Context, transporter *models.Transporter) error {
	transporter.ID = primitive.NewObjectID()
	transporter.CreatedAt = time.Now()
	transporter.UpdatedAt = time.Now()
	transporter.SlugName = utils.Slugify(transporter.Name)

	_, err := r.collection.InsertOne(ctx, transporter)
	if err != nil {
		return fmt.Errorf("failed to create transporter: %w", err)
	}

	return nil
}

func (r *transporterRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transporter, error) {
	var transporter models.Transporter
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transporter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transporter: %w", err)
	}

	return &transporter, nil
}

func (r *transporterRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update transporter: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *transporterRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	return r.Update(ctx, id, map[string]interface{}{"rating": rating})
}
