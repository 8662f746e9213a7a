package interfaces

import (
	"context"

	"tripapi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripPlanRepository interface {
	Create(ctx context.Context, plan *models.TripPlan) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripPlan, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByTransporterID(ctx context.Context, transporterID primitive.ObjectID) ([]*models.TripPlan, error)
	GetAll(ctx context.Context) ([]*models.TripPlan, error)
}
