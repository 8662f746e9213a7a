package interfaces

import (
	"context"

	"tripapi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransporterRepository interface {
	Create(ctx context.Context, transporter *models.Transporter) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transporter, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error
}
