package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"tripapi/internal/models"
	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/utils"
	"tripapi/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes mirroring the guard semantics of the mongodb
// implementations, so service behavior can be tested without a database.

type fakeTx struct{}

func (fakeTx) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func fixedClock(date time.Time) Clock {
	return func() time.Time { return date }
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.SetOutput(io.Discard)
	return log
}

func date(value string) time.Time {
	t, err := time.Parse(utils.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeTripPlanRepo struct {
	plans map[primitive.ObjectID]*models.TripPlan
}

func newFakeTripPlanRepo() *fakeTripPlanRepo {
	return &fakeTripPlanRepo{plans: make(map[primitive.ObjectID]*models.TripPlan)}
}

func (r *fakeTripPlanRepo) Create(ctx context.Context, plan *models.TripPlan) error {
	plan.ID = primitive.NewObjectID()
	if plan.TrackingCode == "" {
		plan.TrackingCode = utils.GenerateTrackingCode(utils.TrackingPrefixTripPlan)
	}
	stored := *plan
	r.plans[plan.ID] = &stored
	return nil
}

func (r *fakeTripPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *plan
	return &cp, nil
}

func (r *fakeTripPlanRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	plan, ok := r.plans[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "start_date":
			plan.StartDate = value.(time.Time)
		case "recurring":
			plan.Recurring = value.(string)
		case "amount":
			plan.Amount = value.(float64)
		case "vehicle_id":
			plan.VehicleID = value.(primitive.ObjectID)
		case "pre_booked_seats":
			plan.PreBookedSeats = value.(int)
		}
	}
	return nil
}

func (r *fakeTripPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *fakeTripPlanRepo) GetByTransporterID(ctx context.Context, transporterID primitive.ObjectID) ([]*models.TripPlan, error) {
	var plans []*models.TripPlan
	for _, plan := range r.plans {
		if plan.TransporterID == transporterID {
			cp := *plan
			plans = append(plans, &cp)
		}
	}
	return plans, nil
}

func (r *fakeTripPlanRepo) GetAll(ctx context.Context) ([]*models.TripPlan, error) {
	var plans []*models.TripPlan
	for _, plan := range r.plans {
		cp := *plan
		plans = append(plans, &cp)
	}
	return plans, nil
}

type fakeTripRepo struct {
	trips map[primitive.ObjectID]*models.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[primitive.ObjectID]*models.Trip)}
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *models.Trip) error {
	trip.ID = primitive.NewObjectID()
	if trip.TrackingCode == "" {
		trip.TrackingCode = utils.GenerateTrackingCode(utils.TrackingPrefixTrip)
	}
	if trip.Status == "" {
		trip.Status = models.TripStatusPending
	}
	trip.LeaveDate = utils.DateOnly(trip.LeaveDate)
	if trip.PlanID != nil {
		for _, existing := range r.trips {
			if existing.PlanID != nil && *existing.PlanID == *trip.PlanID && existing.LeaveDate.Equal(trip.LeaveDate) {
				return interfaces.ErrDuplicateLeaveDate
			}
		}
	}
	stored := *trip
	r.trips[trip.ID] = &stored
	return nil
}

func (r *fakeTripRepo) CreateMany(ctx context.Context, trips []*models.Trip) error {
	for _, trip := range trips {
		if err := r.Create(ctx, trip); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	trip, ok := r.trips[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *trip
	return &cp, nil
}

func (r *fakeTripRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	trip, ok := r.trips[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	applyTripUpdates(trip, updates)
	return nil
}

func applyTripUpdates(trip *models.Trip, updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "transporter_id":
			trip.TransporterID = value.(primitive.ObjectID)
		case "vehicle_id":
			trip.VehicleID = value.(primitive.ObjectID)
		case "driver_id":
			trip.DriverID, _ = value.(*primitive.ObjectID)
		case "trip_type":
			trip.TripType = value.(models.TripType)
		case "origin":
			trip.Origin = value.(string)
		case "destination":
			trip.Destination = value.(string)
		case "boarding_point":
			trip.BoardingPoint = value.(string)
		case "alighting_point":
			trip.AlightingPoint = value.(string)
		case "take_off_time":
			trip.TakeOffTime = value.(string)
		case "duration_minutes":
			trip.DurationMinutes = value.(int)
		case "amount":
			trip.Amount = value.(float64)
		case "available_seats":
			trip.AvailableSeats = value.(int)
		}
	}
}

func (r *fakeTripRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.trips[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.trips, id)
	return nil
}

func (r *fakeTripRepo) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error) {
	var trips []*models.Trip
	for _, trip := range r.trips {
		if trip.PlanID != nil && *trip.PlanID == planID {
			cp := *trip
			trips = append(trips, &cp)
		}
	}
	return trips, nil
}

func (r *fakeTripRepo) GetPendingByPlanID(ctx context.Context, planID primitive.ObjectID) ([]*models.Trip, error) {
	var trips []*models.Trip
	for _, trip := range r.trips {
		if trip.PlanID != nil && *trip.PlanID == planID && trip.Status == models.TripStatusPending {
			cp := *trip
			trips = append(trips, &cp)
		}
	}
	return trips, nil
}

func (r *fakeTripRepo) LeaveDatesByPlanID(ctx context.Context, planID primitive.ObjectID) (map[time.Time]bool, error) {
	dates := make(map[time.Time]bool)
	for _, trip := range r.trips {
		if trip.PlanID != nil && *trip.PlanID == planID {
			dates[trip.LeaveDate] = true
		}
	}
	return dates, nil
}

func (r *fakeTripRepo) UpdatePendingByPlanID(ctx context.Context, planID primitive.ObjectID, updates map[string]interface{}) error {
	for _, trip := range r.trips {
		if trip.PlanID != nil && *trip.PlanID == planID && trip.Status == models.TripStatusPending {
			applyTripUpdates(trip, updates)
		}
	}
	return nil
}

func (r *fakeTripRepo) DeletePendingByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, trip := range r.trips {
		if trip.PlanID != nil && *trip.PlanID == planID && trip.Status == models.TripStatusPending {
			delete(r.trips, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeTripRepo) DeletePendingBefore(ctx context.Context, planID primitive.ObjectID, date time.Time) (int64, error) {
	var deleted int64
	for id, trip := range r.trips {
		if trip.PlanID != nil && *trip.PlanID == planID && trip.Status == models.TripStatusPending && trip.LeaveDate.Before(date) {
			delete(r.trips, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeTripRepo) IncrementPassengers(ctx context.Context, id primitive.ObjectID, delta int) (*models.Trip, error) {
	trip, ok := r.trips[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if delta > 0 && trip.AvailableSeats < delta {
		return nil, interfaces.ErrCapacityExceeded
	}
	if delta < 0 && trip.PassengersCount < -delta {
		return nil, interfaces.ErrNoPassengers
	}
	trip.PassengersCount += delta
	trip.AvailableSeats -= delta
	cp := *trip
	return &cp, nil
}

func (r *fakeTripRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TripStatus) error {
	trip, ok := r.trips[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	trip.Status = status
	return nil
}

func (r *fakeTripRepo) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	trip, ok := r.trips[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	trip.Rating = rating
	return nil
}

func (r *fakeTripRepo) AverageRatingByTransporterID(ctx context.Context, transporterID primitive.ObjectID) (float64, error) {
	var sum float64
	var count int
	for _, trip := range r.trips {
		if trip.TransporterID == transporterID && trip.Rating > 0 {
			sum += trip.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func (r *fakeTripRepo) FindByLeaveDate(ctx context.Context, leaveDate time.Time, minSeats int) ([]*models.Trip, error) {
	var trips []*models.Trip
	for _, trip := range r.trips {
		if trip.LeaveDate.Equal(leaveDate) && trip.AvailableSeats >= minSeats && trip.Status != models.TripStatusCancelled {
			cp := *trip
			trips = append(trips, &cp)
		}
	}
	return trips, nil
}

type fakeVehicleRepo struct {
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (r *fakeVehicleRepo) add(vehicle *models.Vehicle) primitive.ObjectID {
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	r.vehicles[vehicle.ID] = vehicle
	return vehicle.ID
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.add(vehicle)
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *vehicle
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Vehicle, error) {
	result := make(map[primitive.ObjectID]*models.Vehicle)
	for _, id := range ids {
		if vehicle, ok := r.vehicles[id]; ok {
			cp := *vehicle
			result[id] = &cp
		}
	}
	return result, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := r.vehicles[id]; !ok {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) GetByTransporterID(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.TransporterID == transporterID {
			cp := *vehicle
			vehicles = append(vehicles, &cp)
		}
	}
	return vehicles, nil
}

type fakeDriverRepo struct {
	drivers map[primitive.ObjectID]*models.Driver
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{drivers: make(map[primitive.ObjectID]*models.Driver)}
}

func (r *fakeDriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	r.drivers[driver.ID] = driver
	return nil
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	driver, ok := r.drivers[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *driver
	return &cp, nil
}

func (r *fakeDriverRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeDriverRepo) GetByTransporterID(ctx context.Context, transporterID primitive.ObjectID) ([]*models.Driver, error) {
	return nil, nil
}

type fakeTransporterRepo struct {
	transporters map[primitive.ObjectID]*models.Transporter
}

func newFakeTransporterRepo() *fakeTransporterRepo {
	return &fakeTransporterRepo{transporters: make(map[primitive.ObjectID]*models.Transporter)}
}

func (r *fakeTransporterRepo) Create(ctx context.Context, transporter *models.Transporter) error {
	if transporter.ID.IsZero() {
		transporter.ID = primitive.NewObjectID()
	}
	r.transporters[transporter.ID] = transporter
	return nil
}

func (r *fakeTransporterRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transporter, error) {
	transporter, ok := r.transporters[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *transporter
	return &cp, nil
}

func (r *fakeTransporterRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeTransporterRepo) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	transporter, ok := r.transporters[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	transporter.Rating = rating
	return nil
}

type fakeBookingRepo struct {
	bookings   map[primitive.ObjectID]*models.Booking
	passengers map[primitive.ObjectID]*models.Passenger
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:   make(map[primitive.ObjectID]*models.Booking),
		passengers: make(map[primitive.ObjectID]*models.Passenger),
	}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	if booking.TrackingCode == "" {
		booking.TrackingCode = utils.GenerateTrackingCode(utils.TrackingPrefixBooking)
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusUnconfirmed
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *booking
	return &cp, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	booking, ok := r.bookings[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			booking.Status = value.(models.BookingStatus)
		case "rating":
			booking.Rating = value.(float64)
		}
	}
	return nil
}

func (r *fakeBookingRepo) GetByTripID(ctx context.Context, tripID primitive.ObjectID) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for _, booking := range r.bookings {
		if booking.TripID == tripID {
			cp := *booking
			bookings = append(bookings, &cp)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			cp := *booking
			bookings = append(bookings, &cp)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) CountConfirmedByTripID(ctx context.Context, tripID primitive.ObjectID) (int64, error) {
	var count int64
	for _, booking := range r.bookings {
		if booking.TripID == tripID && booking.Status == models.BookingStatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) AverageRatingByTripID(ctx context.Context, tripID primitive.ObjectID) (float64, error) {
	var sum float64
	var count int
	for _, booking := range r.bookings {
		if booking.TripID == tripID && booking.Rating > 0 {
			sum += booking.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func (r *fakeBookingRepo) CreatePassenger(ctx context.Context, passenger *models.Passenger) error {
	passenger.ID = primitive.NewObjectID()
	stored := *passenger
	r.passengers[passenger.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetPassengerByID(ctx context.Context, id primitive.ObjectID) (*models.Passenger, error) {
	passenger, ok := r.passengers[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *passenger
	return &cp, nil
}

func (r *fakeBookingRepo) GetPassengersByBookingID(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Passenger, error) {
	var passengers []*models.Passenger
	for _, passenger := range r.passengers {
		if passenger.BookingID == bookingID {
			cp := *passenger
			passengers = append(passengers, &cp)
		}
	}
	return passengers, nil
}

func (r *fakeBookingRepo) DeletePassenger(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.passengers[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.passengers, id)
	return nil
}

var errCacheMiss = errors.New("cache miss")

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// fakeCache stores marshalled values with an expiry checked against a
// settable clock, so TTL behavior can be driven from tests.
type fakeCache struct {
	now     time.Time
	entries map[string]*cacheEntry
}

func newFakeCache(now time.Time) *fakeCache {
	return &fakeCache{now: now, entries: make(map[string]*cacheEntry)}
}

func (c *fakeCache) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	entry, ok := c.entries[key]
	if !ok || !entry.expiresAt.After(c.now) {
		return errCacheMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = &cacheEntry{data: data, expiresAt: c.now.Add(expiration)}
	return nil
}

func (c *fakeCache) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	entry, ok := c.entries[key]
	if !ok {
		return errCacheMiss
	}
	entry.expiresAt = c.now.Add(expiration)
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}
