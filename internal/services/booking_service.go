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
	ErrBookingNotConfirmable = errors.New("booking cannot be confirmed in its current status")
	ErrBookingCancelled      = errors.New("booking is cancelled")
	ErrInvalidRating         = errors.New("rating must be between 0 and 5")
)

type BookingService interface {
	CreateBooking(ctx context.Context, tripID, userID primitive.ObjectID) (*models.Booking, error)
	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error)
	GetBookingsByTrip(ctx context.Context, tripID primitive.ObjectID) ([]*models.Booking, error)

	// ConfirmBooking marks the booking confirmed and, if this is the
	// trip's first confirmation, flips the trip out of its pending state
	// in the same transaction. From then on plan edits leave it alone.
	ConfirmBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	CancelBooking(ctx context.Context, id primitive.ObjectID) error

	AddPassenger(ctx context.Context, bookingID primitive.ObjectID, passenger *models.Passenger) (*models.Passenger, error)
	RemovePassenger(ctx context.Context, passengerID primitive.ObjectID) error
	GetPassengers(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Passenger, error)

	// RateBooking records the rider's rating and cascades fresh averages
	// up to the trip and its transporter.
	RateBooking(ctx context.Context, id primitive.ObjectID, rating float64) error
}

type bookingService struct {
	bookingRepo     interfaces.BookingRepository
	tripRepo        interfaces.TripRepository
	transporterRepo interfaces.TransporterRepository
	tx              TransactionRunner
	logger          *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	tripRepo interfaces.TripRepository,
	transporterRepo interfaces.TransporterRepository,
	tx TransactionRunner,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		tripRepo:        tripRepo,
		transporterRepo: transporterRepo,
		tx:              tx,
		logger:          log,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, tripID, userID primitive.ObjectID) (*models.Booking, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status == models.TripStatusCancelled || trip.Status == models.TripStatusCompleted {
		return nil, fmt.Errorf("trip is %s and cannot be booked", trip.Status)
	}

	booking := &models.Booking{
		TripID: tripID,
		UserID: userID,
		Status: models.BookingStatusUnconfirmed,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"booking_id":    booking.ID.Hex(),
		"tracking_code": booking.TrackingCode,
		"trip_id":       tripID.Hex(),
	}).Info("Booking created")
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	return s.bookingRepo.GetByUserID(ctx, userID)
}

func (s *bookingService) GetBookingsByTrip(ctx context.Context, tripID primitive.ObjectID) ([]*models.Booking, error) {
	return s.bookingRepo.GetByTripID(ctx, tripID)
}

func (s *bookingService) ConfirmBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusConfirmed {
		return booking, nil
	}
	if booking.Status != models.BookingStatusUnconfirmed {
		return nil, ErrBookingNotConfirmable
	}

	trip, err := s.tripRepo.GetByID(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.Update(ctx, id, map[string]interface{}{
			"status": models.BookingStatusConfirmed,
		}); err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}
		if !trip.HasStarted() {
			if err := s.tripRepo.SetStatus(ctx, trip.ID, models.TripStatusStarted); err != nil {
				return fmt.Errorf("failed to start trip: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusConfirmed
	s.logger.LogBookingEvent(id, "confirmed", map[string]interface{}{
		"trip_id": trip.ID.Hex(),
	})
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id primitive.ObjectID) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil
	}

	passengers, err := s.bookingRepo.GetPassengersByBookingID(ctx, id)
	if err != nil {
		return err
	}

	// Cancelling frees every seat the booking held.
	err = s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		for _, p := range passengers {
			if err := s.bookingRepo.DeletePassenger(ctx, p.ID); err != nil {
				return err
			}
			if _, err := s.tripRepo.IncrementPassengers(ctx, booking.TripID, -1); err != nil {
				return err
			}
		}
		return s.bookingRepo.Update(ctx, id, map[string]interface{}{
			"status": models.BookingStatusCancelled,
		})
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"booking_id": id.Hex(),
		"seats":      len(passengers),
	}).Info("Booking cancelled")
	return nil
}

func (s *bookingService) AddPassenger(ctx context.Context, bookingID primitive.ObjectID, passenger *models.Passenger) (*models.Passenger, error) {
	passenger.BookingID = bookingID
	if err := utils.ValidateStruct(passenger); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrBookingCancelled
	}
	err = s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		// Seat first. If the trip is full the passenger record is never
		// written.
		if _, err := s.tripRepo.IncrementPassengers(ctx, booking.TripID, 1); err != nil {
			return err
		}
		return s.bookingRepo.CreatePassenger(ctx, passenger)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"booking_id":   bookingID.Hex(),
		"passenger_id": passenger.ID.Hex(),
	}).Info("Passenger added to booking")
	return passenger, nil
}

func (s *bookingService) RemovePassenger(ctx context.Context, passengerID primitive.ObjectID) error {
	passenger, err := s.bookingRepo.GetPassengerByID(ctx, passengerID)
	if err != nil {
		return err
	}
	booking, err := s.bookingRepo.GetByID(ctx, passenger.BookingID)
	if err != nil {
		return err
	}

	return s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.DeletePassenger(ctx, passengerID); err != nil {
			return err
		}
		_, err := s.tripRepo.IncrementPassengers(ctx, booking.TripID, -1)
		return err
	})
}

func (s *bookingService) GetPassengers(ctx context.Context, bookingID primitive.ObjectID) ([]*models.Passenger, error) {
	return s.bookingRepo.GetPassengersByBookingID(ctx, bookingID)
}

func (s *bookingService) RateBooking(ctx context.Context, id primitive.ObjectID, rating float64) error {
	if rating < utils.MinRating || rating > utils.MaxRating {
		return ErrInvalidRating
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return fmt.Errorf("only confirmed bookings can be rated")
	}

	if err := s.bookingRepo.Update(ctx, id, map[string]interface{}{"rating": rating}); err != nil {
		return fmt.Errorf("failed to rate booking: %w", err)
	}

	trip, err := s.tripRepo.GetByID(ctx, booking.TripID)
	if err != nil {
		return err
	}

	tripAvg, err := s.bookingRepo.AverageRatingByTripID(ctx, trip.ID)
	if err != nil {
		return fmt.Errorf("failed to average trip ratings: %w", err)
	}
	if err := s.tripRepo.UpdateRating(ctx, trip.ID, tripAvg); err != nil {
		return err
	}

	transporterAvg, err := s.tripRepo.AverageRatingByTransporterID(ctx, trip.TransporterID)
	if err != nil {
		return fmt.Errorf("failed to average transporter ratings: %w", err)
	}
	if err := s.transporterRepo.UpdateRating(ctx, trip.TransporterID, transporterAvg); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"booking_id":         id.Hex(),
		"rating":             rating,
		"trip_rating":        tripAvg,
		"transporter_rating": transporterAvg,
	}).Info("Booking rated")
	return nil
}
