package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
	Down        func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	// Create migrations collection if it doesn't exist
	err := m.createMigrationsCollection()
	if err != nil {
		return err
	}

	// Get current version
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	// Run migrations
	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d completed successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) Down(targetVersion int) error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version <= currentVersion && migration.Version > targetVersion {
			log.Printf("Reverting migration %d: %s", migration.Version, migration.Description)

			err := migration.Down(m.db)
			if err != nil {
				return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
			}

			previousVersion := targetVersion
			if i > 0 {
				previousVersion = m.migrations[i-1].Version
			}

			err = m.updateVersion(previousVersion)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d reverted successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}

	for _, name := range collections {
		if name == "migrations" {
			return nil
		}
	}

	return m.db.CreateCollection(ctx, "migrations")
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create transporters collection with indexes",
			Up: func(db *mongo.Database) error {
				return createTransportersIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("transporters").Drop(context.Background())
			},
		},
		{
			Version:     2,
			Description: "Create vehicles collection with indexes",
			Up: func(db *mongo.Database) error {
				return createVehiclesIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("vehicles").Drop(context.Background())
			},
		},
		{
			Version:     3,
			Description: "Create drivers collection with indexes",
			Up: func(db *mongo.Database) error {
				return createDriversIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("drivers").Drop(context.Background())
			},
		},
		{
			Version:     4,
			Description: "Create trip_plans collection with indexes",
			Up: func(db *mongo.Database) error {
				return createTripPlansIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("trip_plans").Drop(context.Background())
			},
		},
		{
			Version:     5,
			Description: "Create trips collection with indexes",
			Up: func(db *mongo.Database) error {
				return createTripsIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("trips").Drop(context.Background())
			},
		},
		{
			Version:     6,
			Description: "Create bookings and passengers collections with indexes",
			Up: func(db *mongo.Database) error {
				return createBookingsIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				if err := db.Collection("passengers").Drop(context.Background()); err != nil {
					return err
				}
				return db.Collection("bookings").Drop(context.Background())
			},
		},
	}
}

func createTransportersIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("transporters")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "rating", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createVehiclesIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("vehicles")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "transporter_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "plate_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "kind", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}, {Key: "verified", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createDriversIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("drivers")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "transporter_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "tracking_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}, {Key: "verified", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createTripPlansIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("trip_plans")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "transporter_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "tracking_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "recurring", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createTripsIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("trips")

	indexes := []mongo.IndexModel{
		{
			// One trip per plan per leave date. Standalone trips carry no
			// plan_id and are exempt via the partial filter.
			Keys: bson.D{{Key: "plan_id", Value: 1}, {Key: "leave_date", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.D{{Key: "plan_id", Value: bson.D{{Key: "$type", Value: "objectId"}}}},
			),
		},
		{
			Keys: bson.D{{Key: "leave_date", Value: 1}, {Key: "available_seats", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "transporter_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "tracking_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createBookingsIndexes(db *mongo.Database) error {
	ctx := context.Background()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "trip_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "tracking_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	if _, err := db.Collection("bookings").Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return err
	}

	passengerIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}},
		},
	}
	_, err := db.Collection("passengers").Indexes().CreateMany(ctx, passengerIndexes)
	return err
}
