package routes

import (
	"tripapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up routes for bookings and their passengers
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/confirm", bookingHandler.ConfirmBooking)
		bookings.PUT("/:id/cancel", bookingHandler.CancelBooking)
		bookings.POST("/:id/rate", bookingHandler.RateBooking)

		// Passenger manifest
		bookings.POST("/:id/passengers", bookingHandler.AddPassenger)
		bookings.GET("/:id/passengers", bookingHandler.ListPassengers)
		bookings.DELETE("/passengers/:passenger_id", bookingHandler.RemovePassenger)
	}

	users := r.Group("/users")
	{
		users.GET("/:user_id/bookings", bookingHandler.ListUserBookings)
	}

	trips := r.Group("/trips")
	{
		trips.GET("/:id/bookings", bookingHandler.ListTripBookings)
	}
}
