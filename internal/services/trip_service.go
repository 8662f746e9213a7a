package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripapi/internal/models"
	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/utils"
	"tripapi/internal/validators"
	"tripapi/pkg/logger"
	"tripapi/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripService interface {
	CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	GetTrip(ctx context.Context, id primitive.ObjectID) (*models.Trip, error)
	GetTripsByPlan(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error)
	GetTripsByLeaveDate(ctx context.Context, leaveDate time.Time) ([]*models.Trip, error)

	// AddPassenger and RemovePassenger move one seat at a time, atomically
	// against concurrent callers. The returned trip reflects the new counts.
	AddPassenger(ctx context.Context, id primitive.ObjectID) (*models.Trip, error)
	RemovePassenger(ctx context.Context, id primitive.ObjectID) (*models.Trip, error)

	ReassignVehicle(ctx context.Context, tripID, vehicleID primitive.ObjectID) (*models.Trip, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.TripStatus) error
	CancelTrip(ctx context.Context, id primitive.ObjectID) error
}

type tripService struct {
	tripRepo    interfaces.TripRepository
	vehicleRepo interfaces.VehicleRepository
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewTripService(
	tripRepo interfaces.TripRepository,
	vehicleRepo interfaces.VehicleRepository,
	m *metrics.Metrics,
	log *logger.Logger,
) TripService {
	return &tripService{
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		metrics:     m,
		logger:      log,
	}
}

// CreateTrip inserts a one-off trip that is not derived from any plan.
func (s *tripService) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	trip.LeaveDate = utils.DateOnly(trip.LeaveDate)
	if err := utils.ValidateStruct(trip); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, trip.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	if err := validators.ValidateVehicle(vehicle); err != nil {
		return nil, err
	}
	if !trip.RecomputeAvailableSeats(vehicle.Capacity) {
		return nil, validators.ErrSeatsExceedCapacity
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"trip_id":    trip.ID.Hex(),
		"leave_date": utils.FormatDate(trip.LeaveDate),
	}).Info("Trip created")
	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	return s.tripRepo.GetByID(ctx, id)
}

func (s *tripService) GetTripsByPlan(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error) {
	return s.tripRepo.GetByPlanID(ctx, planID)
}

func (s *tripService) GetTripsByLeaveDate(ctx context.Context, leaveDate time.Time) ([]*models.Trip, error) {
	return s.tripRepo.FindByLeaveDate(ctx, utils.DateOnly(leaveDate), 0)
}

func (s *tripService) AddPassenger(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	trip, err := s.tripRepo.IncrementPassengers(ctx, id, 1)
	s.countReservation(err)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) RemovePassenger(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	return s.tripRepo.IncrementPassengers(ctx, id, -1)
}

// ReassignVehicle swaps the trip onto another vehicle and recomputes the
// available seats against the new capacity. Fails when the passengers
// already on board would not fit.
func (s *tripService) ReassignVehicle(ctx context.Context, tripID, vehicleID primitive.ObjectID) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	if err := validators.ValidateVehicle(vehicle); err != nil {
		return nil, err
	}
	if !trip.RecomputeAvailableSeats(vehicle.Capacity) {
		return nil, interfaces.ErrCapacityExceeded
	}

	trip.VehicleID = vehicleID
	updates := map[string]interface{}{
		"vehicle_id":      vehicleID,
		"available_seats": trip.AvailableSeats,
	}
	if err := s.tripRepo.Update(ctx, tripID, updates); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"trip_id":    tripID.Hex(),
		"vehicle_id": vehicleID.Hex(),
	}).Info("Trip vehicle reassigned")
	return trip, nil
}

func (s *tripService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TripStatus) error {
	return s.tripRepo.SetStatus(ctx, id, status)
}

func (s *tripService) CancelTrip(ctx context.Context, id primitive.ObjectID) error {
	if err := s.tripRepo.SetStatus(ctx, id, models.TripStatusCancelled); err != nil {
		return err
	}
	s.logger.LogTripEvent(id, "cancelled", nil)
	return nil
}

func (s *tripService) countReservation(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.SeatReservations.WithLabelValues("ok").Inc()
	case errors.Is(err, interfaces.ErrCapacityExceeded):
		s.metrics.SeatReservations.WithLabelValues("full").Inc()
	default:
		s.metrics.SeatReservations.WithLabelValues("error").Inc()
	}
}
