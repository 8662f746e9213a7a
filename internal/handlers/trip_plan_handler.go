package handlers

import (
	"tripapi/internal/models"
	"tripapi/internal/services"
	"tripapi/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripPlanHandler struct {
	planService services.TripPlanService
}

func NewTripPlanHandler(planService services.TripPlanService) *TripPlanHandler {
	return &TripPlanHandler{
		planService: planService,
	}
}

// CreateTripPlan creates a plan and expands its trip window
func (h *TripPlanHandler) CreateTripPlan(c *gin.Context) {
	var plan models.TripPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	created, err := h.planService.CreatePlan(c.Request.Context(), &plan)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Trip plan created successfully", created)
}

// GetTripPlan retrieves a plan by ID
func (h *TripPlanHandler) GetTripPlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip plan ID")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trip plan retrieved successfully", plan)
}

// ListTransporterPlans retrieves all plans owned by a transporter
func (h *TripPlanHandler) ListTransporterPlans(c *gin.Context) {
	transporterID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transporter ID")
		return
	}

	plans, err := h.planService.GetPlansByTransporter(c.Request.Context(), transporterID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trip plans retrieved successfully", plans)
}

// UpdateTripPlan edits a plan and propagates or regenerates its trips
func (h *TripPlanHandler) UpdateTripPlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip plan ID")
		return
	}

	var update models.TripPlanUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), id, &update)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trip plan updated successfully", plan)
}

// DeleteTripPlan removes a plan and its unstarted trips
func (h *TripPlanHandler) DeleteTripPlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip plan ID")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// StabilizeTripPlan tops up the plan's trip window on demand
func (h *TripPlanHandler) StabilizeTripPlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip plan ID")
		return
	}

	if err := h.planService.StabilizeWindow(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trip plan stabilized successfully", nil)
}
