package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goginie/models"
)

// MoodRecommendationsHandler suggests activities for a mood, place and time
// of day.
func (s *Server) MoodRecommendationsHandler(c *gin.Context) {
	var req models.MoodRequest
	if !bindJSON(c, &req) {
		return
	}
	recs, err := s.Planner.MoodRecommendations(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) PersonalizedRecommendationsHandler(c *gin.Context) {
	var prefs models.TripPreferences
	if !bindJSON(c, &prefs) {
		return
	}
	recs, err := s.Planner.PersonalizedRecommendations(c.Request.Context(), prefs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
