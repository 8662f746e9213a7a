package handlers

import (
	"encoding/json"

	"tripapi/internal/models"
	"tripapi/internal/services"
	"tripapi/internal/utils"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService services.SearchService
}

func NewSearchHandler(searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

type searchRequest struct {
	Origin         string          `json:"origin" validate:"required"`
	Destination    string          `json:"destination" validate:"required"`
	LeaveDate      string          `json:"leave_date" validate:"required"`
	Passengers     int             `json:"passengers" validate:"required,min=1"`
	MinTakeOffTime string          `json:"min_take_off_time"`
	MaxTakeOffTime string          `json:"max_take_off_time"`
	MaxAmount      *float64        `json:"max_amount"`
	VehicleKind    string          `json:"vehicle_kind"`
	Preferences    map[string]bool `json:"preferences"`
}

// SearchTrips ranks and filters trips for a date and route.
// Criteria keys outside searchRequest are a caller error, so the body
// is decoded strictly instead of through the lenient default binding.
func (h *SearchHandler) SearchTrips(c *gin.Context) {
	var request searchRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	leaveDate, err := utils.ParseDate(request.LeaveDate)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	criteria := &models.SearchCriteria{
		Origin:         request.Origin,
		Destination:    request.Destination,
		LeaveDate:      leaveDate,
		Passengers:     request.Passengers,
		MinTakeOffTime: request.MinTakeOffTime,
		MaxTakeOffTime: request.MaxTakeOffTime,
		MaxAmount:      request.MaxAmount,
		VehicleKind:    models.VehicleKind(request.VehicleKind),
		Preferences:    request.Preferences,
	}

	results, err := h.searchService.FindTrips(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Trips retrieved successfully", results, &utils.Meta{
		Count: len(results),
	})
}
