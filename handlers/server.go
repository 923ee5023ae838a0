package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goginie/database"
	"goginie/events"
	"goginie/models"
	"goginie/orchestrator"
	"goginie/services"
)

// Server holds the dependencies every handler needs. Nil Bus disables the
// trip event stream; nil DB reports the store as not initialized.
type Server struct {
	Catalog  *services.Catalog
	Planner  *services.Planner
	Agent    *orchestrator.Agent
	Bookings *database.BookingStore
	Bus      *events.Bus
	DB       *database.DB
}

// Register mounts every route under api.
func (s *Server) Register(api *gin.RouterGroup) {
	api.GET("/health", s.HealthHandler)

	api.POST("/itinerary", s.ItineraryHandler)
	api.POST("/recommendations/mood", s.MoodRecommendationsHandler)
	api.POST("/recommendations/personalized", s.PersonalizedRecommendationsHandler)
	api.POST("/search/:domain", s.SearchHandler)
	api.POST("/book/:domain", s.BookHandler)

	trips := api.Group("/trips")
	{
		trips.POST("", s.StartTripHandler)
		trips.GET("", s.ListTripsHandler)
		trips.GET("/:id", s.GetTripHandler)
		trips.POST("/:id/approve", s.ApproveTripHandler)
		trips.POST("/:id/reject", s.RejectTripHandler)
		trips.POST("/:id/retry", s.RetryTripHandler)
		trips.POST("/:id/restart", s.RestartTripHandler)
		trips.POST("/:id/alternative-date", s.AlternativeDateHandler)
		trips.GET("/:id/events", s.TripEventsHandler)
		trips.GET("/:id/summary.pdf", s.TripSummaryHandler)
	}

	bookings := api.Group("/bookings")
	{
		bookings.GET("", s.ListBookingsHandler)
		bookings.GET("/stats", s.BookingStatsHandler)
		bookings.GET("/:id", s.GetBookingHandler)
		bookings.POST("/:id/cancel", s.CancelBookingHandler)
		bookings.DELETE("/:id", s.DeleteBookingHandler)
		bookings.GET("/:id/receipt", s.ReceiptHandler)
	}

	api.GET("/geocode", s.GeocodeHandler)
	api.GET("/weather", s.WeatherHandler)
}

func (s *Server) HealthHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.DB == nil {
		dbStatus = "not initialized"
	} else if err := s.DB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "GoGinie API",
		"database": dbStatus,
	})
}

// abortWithError maps domain errors onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case models.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrRunNotFound), errors.Is(err, models.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, models.ErrMissingConfiguration):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
