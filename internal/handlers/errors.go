package handlers

import (
	"errors"

	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/services"
	"tripapi/internal/utils"
	"tripapi/internal/validators"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps domain errors onto HTTP responses so every handler
// reports the same way.
func respondError(c *gin.Context, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, "Resource")
	case errors.Is(err, interfaces.ErrCapacityExceeded),
		errors.Is(err, interfaces.ErrNoPassengers),
		errors.Is(err, interfaces.ErrDuplicateLeaveDate),
		errors.Is(err, services.ErrBookingNotConfirmable),
		errors.Is(err, services.ErrBookingCancelled):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, validators.ErrInvalidRecurrenceValue),
		errors.Is(err, validators.ErrStartDatePast),
		errors.Is(err, validators.ErrSeatsExceedCapacity),
		errors.Is(err, validators.ErrResourceNotActive),
		errors.Is(err, validators.ErrResourceNotVerified),
		errors.Is(err, validators.ErrUnknownPreferenceKey),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidPlateNumber),
		errors.Is(err, services.ErrInvalidDriverName):
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
