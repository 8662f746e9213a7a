package routes

import (
	"tripapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupTripRoutes sets up routes for trip instances
func SetupTripRoutes(r *gin.RouterGroup, tripHandler *handlers.TripHandler) {
	trips := r.Group("/trips")
	{
		trips.POST("", tripHandler.CreateTrip)
		trips.GET("", tripHandler.ListTripsByDate)
		trips.GET("/:id", tripHandler.GetTrip)
		trips.PUT("/:id/cancel", tripHandler.CancelTrip)

		// Seat operations
		trips.POST("/:id/passengers", tripHandler.AddPassenger)
		trips.DELETE("/:id/passengers", tripHandler.RemovePassenger)
		trips.PUT("/:id/vehicle", tripHandler.ReassignVehicle)
	}
}
