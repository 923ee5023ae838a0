package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goginie/models"
)

// SearchHandler serves POST /search/:domain for flights, trains, hotels,
// restaurants and cabs.
func (s *Server) SearchHandler(c *gin.Context) {
	ctx := c.Request.Context()

	switch c.Param("domain") {
	case "flights":
		var p models.FlightSearch
		if bindJSON(c, &p) {
			respondSearch(c, s.Catalog.SearchFlights(ctx, p))
		}
	case "trains":
		var p models.TrainSearch
		if bindJSON(c, &p) {
			respondSearch(c, s.Catalog.SearchTrains(ctx, p))
		}
	case "hotels":
		var p models.HotelSearch
		if bindJSON(c, &p) {
			respondSearch(c, s.Catalog.SearchHotels(ctx, p))
		}
	case "restaurants":
		var p models.RestaurantSearch
		if bindJSON(c, &p) {
			respondSearch(c, s.Catalog.SearchRestaurants(ctx, p))
		}
	case "cabs":
		var p models.CabSearch
		if bindJSON(c, &p) {
			respondSearch(c, s.Catalog.SearchCabs(ctx, p))
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown search domain: " + c.Param("domain")})
	}
}

// BookHandler serves POST /book/:domain. Amount is taken as given; the
// caller applies passenger and night multipliers.
func (s *Server) BookHandler(c *gin.Context) {
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	var resp models.BookingResponse
	switch c.Param("domain") {
	case "flights":
		resp = s.Catalog.BookFlight(ctx, req)
	case "trains":
		resp = s.Catalog.BookTrain(ctx, req)
	case "hotels":
		resp = s.Catalog.BookHotel(ctx, req)
	case "restaurants":
		resp = s.Catalog.BookRestaurant(ctx, req)
	case "cabs":
		resp = s.Catalog.BookCab(ctx, req)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown booking domain: " + c.Param("domain")})
		return
	}

	if !resp.Success {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	return true
}

func respondSearch[T any](c *gin.Context, resp models.SearchResponse[T]) {
	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
