package routes

import (
	"tripapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupFleetRoutes sets up routes for transporters, vehicles and drivers
func SetupFleetRoutes(r *gin.RouterGroup, fleetHandler *handlers.FleetHandler, planHandler *handlers.TripPlanHandler) {
	transporters := r.Group("/transporters")
	{
		transporters.POST("", fleetHandler.CreateTransporter)
		transporters.GET("/:id", fleetHandler.GetTransporter)
		transporters.GET("/:id/vehicles", fleetHandler.ListTransporterVehicles)
		transporters.GET("/:id/drivers", fleetHandler.ListTransporterDrivers)
		transporters.GET("/:id/trip-plans", planHandler.ListTransporterPlans)
	}

	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", fleetHandler.CreateVehicle)
		vehicles.GET("/:id", fleetHandler.GetVehicle)
		vehicles.PUT("/:id/status", fleetHandler.SetVehicleStatus)
	}

	drivers := r.Group("/drivers")
	{
		drivers.POST("", fleetHandler.CreateDriver)
		drivers.GET("/:id", fleetHandler.GetDriver)
	}
}
