package routes

import (
	"tripapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupSearchRoutes sets up the trip search endpoint
func SetupSearchRoutes(r *gin.RouterGroup, searchHandler *handlers.SearchHandler) {
	search := r.Group("/search")
	{
		search.POST("/trips", searchHandler.SearchTrips)
	}
}
