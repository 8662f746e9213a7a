package handlers

import (
	"tripapi/internal/models"
	"tripapi/internal/services"
	"tripapi/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FleetHandler struct {
	fleetService services.FleetService
}

func NewFleetHandler(fleetService services.FleetService) *FleetHandler {
	return &FleetHandler{fleetService: fleetService}
}

func (h *FleetHandler) CreateTransporter(c *gin.Context) {
	var transporter models.Transporter
	if err := c.ShouldBindJSON(&transporter); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	created, err := h.fleetService.CreateTransporter(c.Request.Context(), &transporter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Transporter created successfully", created)
}

func (h *FleetHandler) GetTransporter(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transporter ID")
		return
	}

	transporter, err := h.fleetService.GetTransporter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Transporter retrieved successfully", transporter)
}

func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	created, err := h.fleetService.CreateVehicle(c.Request.Context(), &vehicle)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle created successfully", created)
}

func (h *FleetHandler) GetVehicle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.fleetService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved successfully", vehicle)
}

func (h *FleetHandler) ListTransporterVehicles(c *gin.Context) {
	transporterID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transporter ID")
		return
	}

	vehicles, err := h.fleetService.ListTransporterVehicles(c.Request.Context(), transporterID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicles retrieved successfully", vehicles)
}

func (h *FleetHandler) SetVehicleStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	var req struct {
		Active   bool `json:"active"`
		Verified bool `json:"verified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.fleetService.SetVehicleStatus(c.Request.Context(), id, req.Active, req.Verified); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle status updated successfully", nil)
}

func (h *FleetHandler) CreateDriver(c *gin.Context) {
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	created, err := h.fleetService.CreateDriver(c.Request.Context(), &driver)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Driver created successfully", created)
}

func (h *FleetHandler) GetDriver(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid driver ID")
		return
	}

	driver, err := h.fleetService.GetDriver(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver retrieved successfully", driver)
}

func (h *FleetHandler) ListTransporterDrivers(c *gin.Context) {
	transporterID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transporter ID")
		return
	}

	drivers, err := h.fleetService.ListTransporterDrivers(c.Request.Context(), transporterID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Drivers retrieved successfully", drivers)
}
