package services

import (
	"context"
	"errors"
	"fmt"

	"tripapi/internal/models"
	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/utils"
	"tripapi/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidPlateNumber = errors.New("invalid plate number")
	ErrInvalidDriverName  = errors.New("invalid driver name")
)

// FleetService manages the transporters, vehicles and drivers that plans
// and trips reference.
type FleetService interface {
	CreateTransporter(ctx context.Context, transporter *models.Transporter) (*models.Transporter, error)
	GetTransporter(ctx context.Context, id primitive.ObjectID) (*models.Transporter, error)

	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	ListTransporterVehicles(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Vehicle, error)
	SetVehicleStatus(ctx context.Context, id primitive.ObjectID, active, verified bool) error

	CreateDriver(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	ListTransporterDrivers(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Driver, error)
}

type fleetService struct {
	transporterRepo interfaces.TransporterRepository
	vehicleRepo     interfaces.VehicleRepository
	driverRepo      interfaces.DriverRepository
	logger          *logger.Logger
}

func NewFleetService(
	transporterRepo interfaces.TransporterRepository,
	vehicleRepo interfaces.VehicleRepository,
	driverRepo interfaces.DriverRepository,
	log *logger.Logger,
) FleetService {
	return &fleetService{
		transporterRepo: transporterRepo,
		vehicleRepo:     vehicleRepo,
		driverRepo:      driverRepo,
		logger:          log,
	}
}

func (s *fleetService) CreateTransporter(ctx context.Context, transporter *models.Transporter) (*models.Transporter, error) {
	if err := utils.ValidateStruct(transporter); err != nil {
		return nil, err
	}

	if err := s.transporterRepo.Create(ctx, transporter); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"transporter_id": transporter.ID.Hex(),
		"slug_name":      transporter.SlugName,
	}).Info("Transporter created")
	return transporter, nil
}

func (s *fleetService) GetTransporter(ctx context.Context, id primitive.ObjectID) (*models.Transporter, error) {
	return s.transporterRepo.GetByID(ctx, id)
}

func (s *fleetService) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(vehicle); err != nil {
		return nil, err
	}
	if !utils.IsValidPlateNumber(vehicle.PlateNumber) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlateNumber, vehicle.PlateNumber)
	}
	if _, err := s.transporterRepo.GetByID(ctx, vehicle.TransporterID); err != nil {
		return nil, fmt.Errorf("failed to load transporter: %w", err)
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"vehicle_id": vehicle.ID.Hex(),
		"kind":       vehicle.Kind,
		"capacity":   vehicle.Capacity,
	}).Info("Vehicle created")
	return vehicle, nil
}

func (s *fleetService) GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *fleetService) ListTransporterVehicles(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Vehicle, error) {
	return s.vehicleRepo.GetByTransporterID(ctx, transporterID)
}

func (s *fleetService) SetVehicleStatus(ctx context.Context, id primitive.ObjectID, active, verified bool) error {
	return s.vehicleRepo.Update(ctx, id, map[string]interface{}{
		"active":   active,
		"verified": verified,
	})
}

func (s *fleetService) CreateDriver(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	if err := utils.ValidateStruct(driver); err != nil {
		return nil, err
	}
	if !utils.IsValidName(driver.FullName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDriverName, driver.FullName)
	}
	if _, err := s.transporterRepo.GetByID(ctx, driver.TransporterID); err != nil {
		return nil, fmt.Errorf("failed to load transporter: %w", err)
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"driver_id":     driver.ID.Hex(),
		"tracking_code": driver.TrackingCode,
	}).Info("Driver created")
	return driver, nil
}

func (s *fleetService) GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *fleetService) ListTransporterDrivers(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Driver, error) {
	return s.driverRepo.GetByTransporterID(ctx, transporterID)
}
