package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GeocodeHandler(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter q"})
		return
	}

	coords, err := s.Catalog.Weather.Geocode(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if coords == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found: " + q})
		return
	}
	c.JSON(http.StatusOK, coords)
}

func (s *Server) WeatherHandler(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter q"})
		return
	}

	w, err := s.Catalog.Weather.CurrentWeather(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}
