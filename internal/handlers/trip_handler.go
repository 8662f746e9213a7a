package handlers

import (
	"tripapi/internal/models"
	"tripapi/internal/services"
	"tripapi/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripHandler struct {
	tripService services.TripService
}

func NewTripHandler(tripService services.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// CreateTrip creates a standalone trip not derived from a plan
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	created, err := h.tripService.CreateTrip(c.Request.Context(), &trip)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Trip created successfully", created)
}

// GetTrip retrieves a trip by ID
func (h *TripHandler) GetTrip(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trip retrieved successfully", trip)
}

// ListPlanTrips retrieves every trip derived from a plan
func (h *TripHandler) ListPlanTrips(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip plan ID")
		return
	}

	trips, err := h.tripService.GetTripsByPlan(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trips retrieved successfully", trips)
}

// ListTripsByDate retrieves trips departing on a date
func (h *TripHandler) ListTripsByDate(c *gin.Context) {
	leaveDate, err := utils.ParseDate(c.Query("leave_date"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	trips, err := h.tripService.GetTripsByLeaveDate(c.Request.Context(), leaveDate)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trips retrieved successfully", trips)
}

// AddPassenger reserves one seat on the trip
func (h *TripHandler) AddPassenger(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	trip, err := h.tripService.AddPassenger(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Passenger added successfully", trip)
}

// RemovePassenger frees one seat on the trip
func (h *TripHandler) RemovePassenger(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	trip, err := h.tripService.RemovePassenger(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Passenger removed successfully", trip)
}

// ReassignVehicle moves the trip onto another vehicle
func (h *TripHandler) ReassignVehicle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	var request struct {
		VehicleID string `json:"vehicle_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	vehicleID, err := primitive.ObjectIDFromHex(request.VehicleID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	trip, err := h.tripService.ReassignVehicle(c.Request.Context(), id, vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle reassigned successfully", trip)
}

// CancelTrip marks the trip cancelled
func (h *TripHandler) CancelTrip(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	if err := h.tripService.CancelTrip(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trip cancelled successfully", nil)
}
