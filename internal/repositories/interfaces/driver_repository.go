package interfaces

import (
	"context"

	"tripapi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	GetByTransporterID(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Driver, error)
}
