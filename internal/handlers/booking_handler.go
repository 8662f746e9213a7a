package handlers

import (
	"tripapi/internal/models"
	"tripapi/internal/services"
	"tripapi/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking opens an unconfirmed booking on a trip
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var request struct {
		TripID string `json:"trip_id" binding:"required"`
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	tripID, err := primitive.ObjectIDFromHex(request.TripID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}
	userID, err := primitive.ObjectIDFromHex(request.UserID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), tripID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// GetBooking retrieves a booking by ID
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// ListUserBookings retrieves a user's bookings
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	bookings, err := h.bookingService.GetBookingsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved successfully", bookings)
}

// ListTripBookings retrieves every booking taken on a trip
func (h *BookingHandler) ListTripBookings(c *gin.Context) {
	tripID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	bookings, err := h.bookingService.GetBookingsByTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved successfully", bookings)
}

// ConfirmBooking confirms the booking and starts its trip
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking confirmed successfully", booking)
}

// CancelBooking cancels the booking and frees its seats
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", nil)
}

// AddPassenger attaches a passenger and reserves a seat
func (h *BookingHandler) AddPassenger(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var passenger models.Passenger
	if err := c.ShouldBindJSON(&passenger); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	created, err := h.bookingService.AddPassenger(c.Request.Context(), id, &passenger)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Passenger added successfully", created)
}

// RemovePassenger detaches a passenger and frees a seat
func (h *BookingHandler) RemovePassenger(c *gin.Context) {
	passengerID, err := primitive.ObjectIDFromHex(c.Param("passenger_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid passenger ID")
		return
	}

	if err := h.bookingService.RemovePassenger(c.Request.Context(), passengerID); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListPassengers retrieves a booking's passengers
func (h *BookingHandler) ListPassengers(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	passengers, err := h.bookingService.GetPassengers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Passengers retrieved successfully", passengers)
}

// RateBooking records a rating and refreshes the cascaded averages
func (h *BookingHandler) RateBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request struct {
		Rating float64 `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.bookingService.RateBooking(c.Request.Context(), id, request.Rating); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking rated successfully", nil)
}
