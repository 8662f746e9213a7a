package routes

import (
	"tripapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupTripPlanRoutes sets up routes for trip plan management
func SetupTripPlanRoutes(r *gin.RouterGroup, planHandler *handlers.TripPlanHandler, tripHandler *handlers.TripHandler) {
	plans := r.Group("/trip-plans")
	{
		// Plan lifecycle
		plans.POST("", planHandler.CreateTripPlan)
		plans.GET("/:id", planHandler.GetTripPlan)
		plans.PUT("/:id", planHandler.UpdateTripPlan)
		plans.DELETE("/:id", planHandler.DeleteTripPlan)

		// Window maintenance
		plans.POST("/:id/stabilize", planHandler.StabilizeTripPlan)

		// Generated trips of a plan
		plans.GET("/:id/trips", tripHandler.ListPlanTrips)
	}
}
