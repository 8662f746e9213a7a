package services

import (
	"context"
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

type TripPlanService interface {
	CreatePlan(ctx context.Context, plan *models.TripPlan) (*models.TripPlan, error)
	GetPlan(ctx context.Context, id primitive.ObjectID) (*models.TripPlan, error)
	GetPlansByTransporter(ctx context.Context, transporterID primitive.ObjectID) ([]*models.TripPlan, error)
	UpdatePlan(ctx context.Context, id primitive.ObjectID, update *models.TripPlanUpdate) (*models.TripPlan, error)
	DeletePlan(ctx context.Context, id primitive.ObjectID) error

	// StabilizeWindow tops the plan's trip window back up to the full
	// horizon from today and drops unstarted trips whose leave date has
	// passed. Safe to run repeatedly; intended for a periodic job.
	StabilizeWindow(ctx context.Context, planID primitive.ObjectID) error
	StabilizeAll(ctx context.Context) error
}

type tripPlanService struct {
	planRepo        interfaces.TripPlanRepository
	tripRepo        interfaces.TripRepository
	vehicleRepo     interfaces.VehicleRepository
	driverRepo      interfaces.DriverRepository
	transporterRepo interfaces.TransporterRepository
	tx              TransactionRunner
	clock           Clock
	metrics         *metrics.Metrics
	logger          *logger.Logger
	windowDays      int
	everydayKeyword string
}

func NewTripPlanService(
	planRepo interfaces.TripPlanRepository,
	tripRepo interfaces.TripRepository,
	vehicleRepo interfaces.VehicleRepository,
	driverRepo interfaces.DriverRepository,
	transporterRepo interfaces.TransporterRepository,
	tx TransactionRunner,
	clock Clock,
	m *metrics.Metrics,
	log *logger.Logger,
	windowDays int,
	everydayKeyword string,
) TripPlanService {
	if windowDays <= 0 {
		windowDays = utils.DefaultTripWindowDays
	}
	if everydayKeyword == "" {
		everydayKeyword = utils.RecurringEveryday
	}
	return &tripPlanService{
		planRepo:        planRepo,
		tripRepo:        tripRepo,
		vehicleRepo:     vehicleRepo,
		driverRepo:      driverRepo,
		transporterRepo: transporterRepo,
		tx:              tx,
		clock:           clock,
		metrics:         m,
		logger:          log,
		windowDays:      windowDays,
		everydayKeyword: everydayKeyword,
	}
}

func (s *tripPlanService) CreatePlan(ctx context.Context, plan *models.TripPlan) (*models.TripPlan, error) {
	plan.StartDate = utils.DateOnly(plan.StartDate)
	plan.Recurring = s.canonicalRecurring(plan.Recurring)

	if err := utils.ValidateStruct(plan); err != nil {
		return nil, err
	}
	if err := validators.ValidateRecurringValue(plan.Recurring, utils.RecurringEveryday); err != nil {
		return nil, err
	}
	if err := validators.ValidateStartDate(plan.StartDate, s.clock()); err != nil {
		return nil, err
	}
	if _, err := s.transporterRepo.GetByID(ctx, plan.TransporterID); err != nil {
		return nil, fmt.Errorf("failed to load transporter: %w", err)
	}
	vehicle, err := s.checkVehicle(ctx, plan.VehicleID, plan.PreBookedSeats)
	if err != nil {
		return nil, err
	}
	if err := s.checkDriver(ctx, plan.DriverID); err != nil {
		return nil, err
	}

	err = s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		if err := s.planRepo.Create(ctx, plan); err != nil {
			return fmt.Errorf("failed to create trip plan: %w", err)
		}
		return s.generateTrips(ctx, plan, plan.StartDate, vehicle.Capacity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"plan_id":       plan.ID.Hex(),
		"tracking_code": plan.TrackingCode,
		"recurring":     plan.Recurring,
	}).Info("Trip plan created")
	return plan, nil
}

func (s *tripPlanService) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.TripPlan, error) {
	return s.planRepo.GetByID(ctx, id)
}

func (s *tripPlanService) GetPlansByTransporter(ctx context.Context, transporterID primitive.ObjectID) ([]*models.TripPlan, error) {
	return s.planRepo.GetByTransporterID(ctx, transporterID)
}

func (s *tripPlanService) UpdatePlan(ctx context.Context, id primitive.ObjectID, update *models.TripPlanUpdate) (*models.TripPlan, error) {
	if err := utils.ValidateStruct(update); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recurringChanged, startDateChanged, vehicleChanged := s.applyUpdate(plan, update)

	if err := validators.ValidateRecurringValue(plan.Recurring, utils.RecurringEveryday); err != nil {
		return nil, err
	}
	if startDateChanged {
		if err := validators.ValidateStartDate(plan.StartDate, s.clock()); err != nil {
			return nil, err
		}
	}
	vehicle, err := s.checkVehicle(ctx, plan.VehicleID, plan.PreBookedSeats)
	if err != nil {
		return nil, err
	}
	if err := s.checkDriver(ctx, plan.DriverID); err != nil {
		return nil, err
	}

	err = s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		if err := s.planRepo.Update(ctx, id, s.planFields(plan)); err != nil {
			return fmt.Errorf("failed to update trip plan: %w", err)
		}

		if recurringChanged || startDateChanged {
			// The derived schedule no longer matches the unstarted
			// trips, so rebuild them. Trips that already started are a
			// historical record and stay as they are.
			deleted, err := s.tripRepo.DeletePendingByPlanID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to delete pending trips: %w", err)
			}
			s.countDeleted(deleted)
			return s.generateTrips(ctx, plan, s.regenerationAnchor(plan), vehicle.Capacity)
		}
		if vehicleChanged {
			return s.propagateWithCapacity(ctx, plan, vehicle.Capacity)
		}
		if err := s.tripRepo.UpdatePendingByPlanID(ctx, id, plan.SharedFields()); err != nil {
			return fmt.Errorf("failed to propagate plan changes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"plan_id":            id.Hex(),
		"recurring_changed":  recurringChanged,
		"start_date_changed": startDateChanged,
		"vehicle_changed":    vehicleChanged,
	}).Info("Trip plan updated")
	return plan, nil
}

func (s *tripPlanService) DeletePlan(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.planRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.tripRepo.DeletePendingByPlanID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete pending trips: %w", err)
		}
		s.countDeleted(deleted)
		if err := s.planRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete trip plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithField("plan_id", id.Hex()).Info("Trip plan deleted")
	return nil
}

func (s *tripPlanService) StabilizeWindow(ctx context.Context, planID primitive.ObjectID) error {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, plan.VehicleID)
	if err != nil {
		return fmt.Errorf("failed to load vehicle: %w", err)
	}

	today := utils.DateOnly(s.clock())
	return s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		if err := s.generateTrips(ctx, plan, s.regenerationAnchor(plan), vehicle.Capacity); err != nil {
			return err
		}
		deleted, err := s.tripRepo.DeletePendingBefore(ctx, planID, today)
		if err != nil {
			return fmt.Errorf("failed to drop stale trips: %w", err)
		}
		s.countDeleted(deleted)
		return nil
	})
}

func (s *tripPlanService) StabilizeAll(ctx context.Context) error {
	plans, err := s.planRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list trip plans: %w", err)
	}

	var failed int
	for _, plan := range plans {
		if err := s.StabilizeWindow(ctx, plan.ID); err != nil {
			failed++
			s.logger.WithError(err).WithField("plan_id", plan.ID.Hex()).Error("Failed to stabilize trip plan")
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to stabilize %d of %d trip plans", failed, len(plans))
	}

	s.logger.WithField("plans", len(plans)).Info("Trip windows stabilized")
	return nil
}

// generateTrips expands the plan's recurrence rule from anchor and inserts
// the dates that do not already have a trip, started or not. Existing trips
// are never touched, which is what makes repeated runs converge.
func (s *tripPlanService) generateTrips(ctx context.Context, plan *models.TripPlan, anchor time.Time, capacity int) error {
	existing, err := s.tripRepo.LeaveDatesByPlanID(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to load existing leave dates: %w", err)
	}

	var trips []*models.Trip
	for date := range utils.RecurrenceDates(utils.DateOnly(anchor), plan.Recurring, s.windowDays) {
		if existing[date] {
			continue
		}
		trip := plan.InstanceAt(date)
		if !trip.RecomputeAvailableSeats(capacity) {
			return validators.ErrSeatsExceedCapacity
		}
		trips = append(trips, trip)
	}
	if len(trips) == 0 {
		return nil
	}

	if err := s.tripRepo.CreateMany(ctx, trips); err != nil {
		return fmt.Errorf("failed to create trips: %w", err)
	}
	if s.metrics != nil {
		s.metrics.TripsGenerated.Add(float64(len(trips)))
	}
	return nil
}

// regenerationAnchor is the first date a rebuilt window may contain:
// today, or the plan's start date when that is still in the future.
func (s *tripPlanService) regenerationAnchor(plan *models.TripPlan) time.Time {
	anchor := utils.DateOnly(s.clock())
	if plan.StartDate.After(anchor) {
		anchor = plan.StartDate
	}
	return anchor
}

func (s *tripPlanService) countDeleted(n int64) {
	if s.metrics != nil && n > 0 {
		s.metrics.TripsDeleted.Add(float64(n))
	}
}

// propagateWithCapacity pushes the shared plan fields onto each unstarted
// trip individually so available seats can be recomputed against the new
// vehicle's capacity. Any trip whose passengers no longer fit aborts the
// whole edit.
func (s *tripPlanService) propagateWithCapacity(ctx context.Context, plan *models.TripPlan, capacity int) error {
	pending, err := s.tripRepo.GetPendingByPlanID(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to load pending trips: %w", err)
	}

	for _, trip := range pending {
		if trip.PassengersCount > capacity {
			return interfaces.ErrCapacityExceeded
		}
		updates := plan.SharedFields()
		updates["available_seats"] = capacity - trip.PassengersCount
		if err := s.tripRepo.Update(ctx, trip.ID, updates); err != nil {
			return fmt.Errorf("failed to propagate plan changes: %w", err)
		}
	}
	return nil
}

func (s *tripPlanService) checkVehicle(ctx context.Context, id primitive.ObjectID, passengers int) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	if err := validators.ValidateVehicle(vehicle); err != nil {
		return nil, err
	}
	if err := validators.ValidatePassengersCount(passengers, vehicle.Capacity); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *tripPlanService) checkDriver(ctx context.Context, id *primitive.ObjectID) error {
	if id == nil {
		return nil
	}
	driver, err := s.driverRepo.GetByID(ctx, *id)
	if err != nil {
		return fmt.Errorf("failed to load driver: %w", err)
	}
	return validators.ValidateDriver(driver)
}

// canonicalRecurring maps the deployment's everyday keyword onto the
// internal constant so the resolver only ever sees one spelling.
func (s *tripPlanService) canonicalRecurring(value string) string {
	if value == s.everydayKeyword {
		return utils.RecurringEveryday
	}
	return value
}

func (s *tripPlanService) applyUpdate(plan *models.TripPlan, update *models.TripPlanUpdate) (recurringChanged, startDateChanged, vehicleChanged bool) {
	if update.VehicleID != nil && *update.VehicleID != plan.VehicleID {
		plan.VehicleID = *update.VehicleID
		vehicleChanged = true
	}
	if update.DriverID != nil {
		plan.DriverID = update.DriverID
	}
	if update.TripType != nil {
		plan.TripType = *update.TripType
	}
	if update.Origin != nil {
		plan.Origin = *update.Origin
	}
	if update.Destination != nil {
		plan.Destination = *update.Destination
	}
	if update.BoardingPoint != nil {
		plan.BoardingPoint = *update.BoardingPoint
	}
	if update.AlightingPoint != nil {
		plan.AlightingPoint = *update.AlightingPoint
	}
	if update.TakeOffTime != nil {
		plan.TakeOffTime = *update.TakeOffTime
	}
	if update.DurationMinutes != nil {
		plan.DurationMinutes = *update.DurationMinutes
	}
	if update.Amount != nil {
		plan.Amount = *update.Amount
	}
	if update.PreBookedSeats != nil {
		plan.PreBookedSeats = *update.PreBookedSeats
	}
	if update.StartDate != nil {
		date := utils.DateOnly(*update.StartDate)
		if !date.Equal(plan.StartDate) {
			plan.StartDate = date
			startDateChanged = true
		}
	}
	if update.Recurring != nil {
		value := s.canonicalRecurring(*update.Recurring)
		if value != plan.Recurring {
			plan.Recurring = value
			recurringChanged = true
		}
	}
	return recurringChanged, startDateChanged, vehicleChanged
}

func (s *tripPlanService) planFields(plan *models.TripPlan) map[string]interface{} {
	fields := plan.SharedFields()
	fields["pre_booked_seats"] = plan.PreBookedSeats
	fields["start_date"] = plan.StartDate
	fields["recurring"] = plan.Recurring
	return fields
}
