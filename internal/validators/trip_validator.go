package validators

import (
	"errors"
	"fmt"
	"time"

	"tripapi/internal/models"
	"tripapi/internal/utils"
)

var (
	ErrInvalidRecurrenceValue = errors.New("recurring must be empty, the everyday keyword, or a weekday name")
	ErrStartDatePast          = errors.New("start date is too old, select a future or current date")
	ErrSeatsExceedCapacity    = errors.New("passengers count is greater than the vehicle capacity")
	ErrResourceNotActive      = errors.New("selected resource is not active")
	ErrResourceNotVerified    = errors.New("selected resource is not verified")
)

// ValidateRecurringValue checks a plan's recurrence rule: empty, the
// configured everyday keyword, or a lowercase weekday name.
func ValidateRecurringValue(value, everydayKeyword string) error {
	if value == models.RecurrenceNone || value == everydayKeyword {
		return nil
	}
	if _, ok := utils.ParseWeekday(value); ok {
		return nil
	}
	return ErrInvalidRecurrenceValue
}

// ValidateStartDate rejects anchor dates before today.
func ValidateStartDate(startDate, today time.Time) error {
	if utils.DateOnly(startDate).Before(utils.DateOnly(today)) {
		return ErrStartDatePast
	}
	return nil
}

// ValidatePassengersCount rejects passenger counts above vehicle capacity.
// Counts are never clamped; the mutation that carried them fails instead.
func ValidatePassengersCount(passengers, capacity int) error {
	if passengers > capacity {
		return fmt.Errorf("%w: %d passengers for %d seats", ErrSeatsExceedCapacity, passengers, capacity)
	}
	return nil
}

// ValidateVehicle checks the active and verified preconditions on a
// vehicle referenced by a plan or trip.
func ValidateVehicle(vehicle *models.Vehicle) error {
	if !vehicle.Active {
		return fmt.Errorf("%w: vehicle %s", ErrResourceNotActive, vehicle.Name)
	}
	if !vehicle.Verified {
		return fmt.Errorf("%w: vehicle %s", ErrResourceNotVerified, vehicle.Name)
	}
	return nil
}

// ValidateDriver checks the active and verified preconditions on a
// driver referenced by a plan or trip.
func ValidateDriver(driver *models.Driver) error {
	if !driver.Active {
		return fmt.Errorf("%w: driver %s", ErrResourceNotActive, driver.FullName)
	}
	if !driver.Verified {
		return fmt.Errorf("%w: driver %s", ErrResourceNotVerified, driver.FullName)
	}
	return nil
}
