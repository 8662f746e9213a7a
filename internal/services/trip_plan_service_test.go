package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripapi/internal/models"
	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/utils"
	"tripapi/internal/validators"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type planFixture struct {
	planRepo      *fakeTripPlanRepo
	tripRepo      *fakeTripRepo
	vehicleRepo   *fakeVehicleRepo
	driverRepo    *fakeDriverRepo
	transporters  *fakeTransporterRepo
	transporterID primitive.ObjectID
	vehicleID     primitive.ObjectID
	service       TripPlanService
}

func newPlanFixture(t *testing.T, today time.Time, windowDays int, everydayKeyword string) *planFixture {
	t.Helper()

	f := &planFixture{
		planRepo:     newFakeTripPlanRepo(),
		tripRepo:     newFakeTripRepo(),
		vehicleRepo:  newFakeVehicleRepo(),
		driverRepo:   newFakeDriverRepo(),
		transporters: newFakeTransporterRepo(),
	}

	transporter := &models.Transporter{Name: "Swift Lines"}
	if err := f.transporters.Create(context.Background(), transporter); err != nil {
		t.Fatalf("create transporter: %v", err)
	}
	f.transporterID = transporter.ID

	f.vehicleID = f.vehicleRepo.add(&models.Vehicle{
		TransporterID: f.transporterID,
		Name:          "Marcopolo 44",
		Kind:          models.VehicleKindBus,
		Capacity:      40,
		Active:        true,
		Verified:      true,
	})

	f.service = NewTripPlanService(
		f.planRepo, f.tripRepo, f.vehicleRepo, f.driverRepo, f.transporters,
		fakeTx{}, fixedClock(today), nil, testLogger(t), windowDays, everydayKeyword,
	)
	return f
}

func (f *planFixture) newPlan(startDate time.Time, recurring string) *models.TripPlan {
	return &models.TripPlan{
		TransporterID:   f.transporterID,
		VehicleID:       f.vehicleID,
		TripType:        models.TripTypeIntercity,
		Origin:          "Lagos",
		Destination:     "Abuja",
		BoardingPoint:   "Jibowu Terminal",
		AlightingPoint:  "Utako Park",
		TakeOffTime:     "08:30",
		DurationMinutes: 540,
		Amount:          15500,
		PreBookedSeats:  2,
		StartDate:       startDate,
		Recurring:       recurring,
	}
}

func (f *planFixture) tripsOf(t *testing.T, planID primitive.ObjectID) []*models.Trip {
	t.Helper()
	trips, err := f.tripRepo.GetByPlanID(context.Background(), planID)
	if err != nil {
		t.Fatalf("GetByPlanID: %v", err)
	}
	return trips
}

func TestCreatePlanWeeklyExpandsOccurrences(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 35, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(date("2022-08-12"), "friday"))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	if len(trips) != 5 {
		t.Fatalf("expected 5 trips in a 35 day window, got %d", len(trips))
	}

	want := map[string]bool{
		"2022-08-12": true, "2022-08-19": true, "2022-08-26": true,
		"2022-09-02": true, "2022-09-09": true,
	}
	for _, trip := range trips {
		key := utils.FormatDate(trip.LeaveDate)
		if !want[key] {
			t.Errorf("unexpected leave date %s", key)
		}
		if trip.Status != models.TripStatusPending {
			t.Errorf("trip %s: status = %s, want pending", key, trip.Status)
		}
		if trip.PassengersCount != 2 {
			t.Errorf("trip %s: passengers = %d, want pre-booked 2", key, trip.PassengersCount)
		}
		if trip.AvailableSeats != 38 {
			t.Errorf("trip %s: available seats = %d, want 38", key, trip.AvailableSeats)
		}
	}
}

func TestCreatePlanOneOff(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 30, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(date("2022-08-15"), models.RecurrenceNone))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	if len(trips) != 1 {
		t.Fatalf("expected a single trip, got %d", len(trips))
	}
	if !trips[0].LeaveDate.Equal(date("2022-08-15")) {
		t.Errorf("leave date = %s, want start date", utils.FormatDate(trips[0].LeaveDate))
	}
}

func TestCreatePlanEverydayFillsWindow(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 7, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	if trips := f.tripsOf(t, plan.ID); len(trips) != 7 {
		t.Fatalf("expected 7 trips, got %d", len(trips))
	}
}

func TestCreatePlanCustomEverydayKeyword(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 7, "daily")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, "daily"))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if plan.Recurring != utils.RecurringEveryday {
		t.Errorf("recurring stored as %q, want canonical %q", plan.Recurring, utils.RecurringEveryday)
	}
	if trips := f.tripsOf(t, plan.ID); len(trips) != 7 {
		t.Fatalf("expected 7 trips, got %d", len(trips))
	}
}

func TestCreatePlanRejectsPastStartDate(t *testing.T) {
	f := newPlanFixture(t, date("2022-08-10"), 30, "")

	_, err := f.service.CreatePlan(context.Background(), f.newPlan(date("2022-08-09"), ""))
	if !errors.Is(err, validators.ErrStartDatePast) {
		t.Fatalf("err = %v, want ErrStartDatePast", err)
	}
}

func TestCreatePlanRejectsSeatsOverCapacity(t *testing.T) {
	f := newPlanFixture(t, date("2022-08-10"), 30, "")

	plan := f.newPlan(date("2022-08-12"), "")
	plan.PreBookedSeats = 50
	_, err := f.service.CreatePlan(context.Background(), plan)
	if !errors.Is(err, validators.ErrSeatsExceedCapacity) {
		t.Fatalf("err = %v, want ErrSeatsExceedCapacity", err)
	}
}

func TestCreatePlanRejectsInactiveVehicle(t *testing.T) {
	f := newPlanFixture(t, date("2022-08-10"), 30, "")
	f.vehicleRepo.vehicles[f.vehicleID].Active = false

	_, err := f.service.CreatePlan(context.Background(), f.newPlan(date("2022-08-12"), ""))
	if !errors.Is(err, validators.ErrResourceNotActive) {
		t.Fatalf("err = %v, want ErrResourceNotActive", err)
	}
}

func TestCreatePlanRejectsBadRecurringValue(t *testing.T) {
	f := newPlanFixture(t, date("2022-08-10"), 30, "")

	_, err := f.service.CreatePlan(context.Background(), f.newPlan(date("2022-08-12"), "fortnightly"))
	if !errors.Is(err, validators.ErrInvalidRecurrenceValue) {
		t.Fatalf("err = %v, want ErrInvalidRecurrenceValue", err)
	}
}

func TestUpdatePlanPropagatesToPendingOnly(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 5, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	started := trips[0]
	if err := f.tripRepo.SetStatus(context.Background(), started.ID, models.TripStatusStarted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	amount := 18000.0
	if _, err := f.service.UpdatePlan(context.Background(), plan.ID, &models.TripPlanUpdate{Amount: &amount}); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	for _, trip := range f.tripsOf(t, plan.ID) {
		if trip.ID == started.ID {
			if trip.Amount != 15500 {
				t.Errorf("started trip amount changed to %v", trip.Amount)
			}
			continue
		}
		if trip.Amount != 18000 {
			t.Errorf("pending trip amount = %v, want 18000", trip.Amount)
		}
	}
}

func TestUpdatePlanRecurringChangeRegenerates(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 7, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(date("2022-08-12"), "friday"))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	started := trips[0]
	if err := f.tripRepo.SetStatus(context.Background(), started.ID, models.TripStatusStarted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	recurring := utils.RecurringEveryday
	if _, err := f.service.UpdatePlan(context.Background(), plan.ID, &models.TripPlanUpdate{Recurring: &recurring}); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	after := f.tripsOf(t, plan.ID)
	// The started trip survives; seven everyday trips are generated from
	// the plan's start date, one of which collides with the started
	// trip's date and is skipped.
	var startedSeen bool
	var pending int
	for _, trip := range after {
		if trip.ID == started.ID {
			startedSeen = true
			continue
		}
		if trip.Status != models.TripStatusPending {
			t.Errorf("unexpected status %s", trip.Status)
		}
		pending++
	}
	if !startedSeen {
		t.Error("started trip was deleted by recurrence change")
	}
	if pending != 6 {
		t.Errorf("pending trips after regeneration = %d, want 6", pending)
	}
}

func TestUpdatePlanStartDateChangeRegeneratesFromNewDate(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 3, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	newStart := date("2022-08-20")
	if _, err := f.service.UpdatePlan(context.Background(), plan.ID, &models.TripPlanUpdate{StartDate: &newStart}); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	if len(trips) != 3 {
		t.Fatalf("expected 3 regenerated trips, got %d", len(trips))
	}
	for _, trip := range trips {
		if trip.LeaveDate.Before(newStart) {
			t.Errorf("trip on %s predates the new start date", utils.FormatDate(trip.LeaveDate))
		}
	}
}

func TestUpdatePlanRecurringChangeKeepsFutureStartDate(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 7, "")

	start := date("2022-08-20")
	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(start, "saturday"))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	recurring := utils.RecurringEveryday
	if _, err := f.service.UpdatePlan(context.Background(), plan.ID, &models.TripPlanUpdate{Recurring: &recurring}); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	if len(trips) != 7 {
		t.Fatalf("expected 7 regenerated trips, got %d", len(trips))
	}
	for _, trip := range trips {
		if trip.LeaveDate.Before(start) {
			t.Errorf("trip on %s predates the plan start date", utils.FormatDate(trip.LeaveDate))
		}
	}
}

func TestUpdatePlanVehicleChangeRecomputesSeats(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 2, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	smallerID := f.vehicleRepo.add(&models.Vehicle{
		TransporterID: f.transporterID,
		Name:          "Sienna 7",
		Kind:          models.VehicleKindBus,
		Capacity:      7,
		Active:        true,
		Verified:      true,
	})

	if _, err := f.service.UpdatePlan(context.Background(), plan.ID, &models.TripPlanUpdate{VehicleID: &smallerID}); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	for _, trip := range f.tripsOf(t, plan.ID) {
		if trip.VehicleID != smallerID {
			t.Errorf("trip still on old vehicle")
		}
		if trip.AvailableSeats != 5 {
			t.Errorf("available seats = %d, want 5 after capacity change", trip.AvailableSeats)
		}
	}
}

func TestUpdatePlanVehicleChangeRejectsOverloadedTrip(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 1, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	trip := f.tripsOf(t, plan.ID)[0]
	for i := 0; i < 8; i++ {
		if _, err := f.tripRepo.IncrementPassengers(context.Background(), trip.ID, 1); err != nil {
			t.Fatalf("IncrementPassengers: %v", err)
		}
	}

	tinyID := f.vehicleRepo.add(&models.Vehicle{
		TransporterID: f.transporterID,
		Name:          "Kia 4",
		Kind:          models.VehicleKindBus,
		Capacity:      4,
		Active:        true,
		Verified:      true,
	})

	_, err = f.service.UpdatePlan(context.Background(), plan.ID, &models.TripPlanUpdate{VehicleID: &tinyID})
	if !errors.Is(err, interfaces.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
}

func TestDeletePlanKeepsStartedTrips(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 3, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	started := trips[1]
	if err := f.tripRepo.SetStatus(context.Background(), started.ID, models.TripStatusStarted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if err := f.service.DeletePlan(context.Background(), plan.ID); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}

	if _, err := f.planRepo.GetByID(context.Background(), plan.ID); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("plan still present: %v", err)
	}
	remaining := f.tripsOf(t, plan.ID)
	if len(remaining) != 1 || remaining[0].ID != started.ID {
		t.Fatalf("expected only the started trip to survive, got %d trips", len(remaining))
	}
}

func TestStabilizeWindowIdempotent(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 7, "")

	plan, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := f.service.StabilizeWindow(context.Background(), plan.ID); err != nil {
			t.Fatalf("StabilizeWindow run %d: %v", i+1, err)
		}
	}

	if trips := f.tripsOf(t, plan.ID); len(trips) != 7 {
		t.Fatalf("expected 7 trips after repeated stabilization, got %d", len(trips))
	}
}

func TestStabilizeWindowTopsUpAndDropsStale(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 5, "")

	// Seed a plan that has aged: its stored window begins before today.
	plan := f.newPlan(date("2022-08-01"), utils.RecurringEveryday)
	if err := f.planRepo.Create(context.Background(), plan); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	stale := plan.InstanceAt(date("2022-08-08"))
	stale.RecomputeAvailableSeats(40)
	started := plan.InstanceAt(date("2022-08-09"))
	started.RecomputeAvailableSeats(40)
	started.Status = models.TripStatusStarted
	if err := f.tripRepo.CreateMany(context.Background(), []*models.Trip{stale, started}); err != nil {
		t.Fatalf("seed trips: %v", err)
	}

	if err := f.service.StabilizeWindow(context.Background(), plan.ID); err != nil {
		t.Fatalf("StabilizeWindow: %v", err)
	}

	trips := f.tripsOf(t, plan.ID)
	byDate := make(map[string]*models.Trip, len(trips))
	for _, trip := range trips {
		byDate[utils.FormatDate(trip.LeaveDate)] = trip
	}

	if _, ok := byDate["2022-08-08"]; ok {
		t.Error("stale pending trip survived stabilization")
	}
	if trip, ok := byDate["2022-08-09"]; !ok || trip.Status != models.TripStatusStarted {
		t.Error("started trip before today should be preserved")
	}
	for i := 0; i < 5; i++ {
		key := utils.FormatDate(today.AddDate(0, 0, i))
		if _, ok := byDate[key]; !ok {
			t.Errorf("window date %s missing after stabilization", key)
		}
	}
}

func TestStabilizeAllCoversEveryPlan(t *testing.T) {
	today := date("2022-08-10")
	f := newPlanFixture(t, today, 2, "")

	first, err := f.service.CreatePlan(context.Background(), f.newPlan(today, utils.RecurringEveryday))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	second, err := f.service.CreatePlan(context.Background(), f.newPlan(date("2022-08-12"), "friday"))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	if err := f.service.StabilizeAll(context.Background()); err != nil {
		t.Fatalf("StabilizeAll: %v", err)
	}

	if trips := f.tripsOf(t, first.ID); len(trips) != 2 {
		t.Errorf("first plan has %d trips, want 2", len(trips))
	}
	if trips := f.tripsOf(t, second.ID); len(trips) != 1 {
		t.Errorf("second plan has %d trips, want 1", len(trips))
	}
}
