package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goginie/models"
)

// ItineraryHandler generates a standalone itinerary without starting a trip
// run. Generation failures fall back to the mock itinerary, so only invalid
// preferences are rejected.
func (s *Server) ItineraryHandler(c *gin.Context) {
	var prefs models.TripPreferences
	if !bindJSON(c, &prefs) {
		return
	}

	it, err := s.Planner.Generate(c.Request.Context(), prefs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Printf("✅ Itinerary for %s served (%s, %d days)", prefs.Destination, it.Source, len(it.Days))
	c.JSON(http.StatusOK, it)
}
