package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goginie/models"
)

// ListBookingsHandler supports ?type=, ?status= and a free-text ?q=.
func (s *Server) ListBookingsHandler(c *gin.Context) {
	filter := models.BookingFilter{
		Type:   models.BookingType(c.Query("type")),
		Status: models.BookingStatus(c.Query("status")),
		Query:  c.Query("q"),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown booking type: " + string(filter.Type)})
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown booking status: " + string(filter.Status)})
		return
	}

	list, err := s.Bookings.List(filter)
	if err != nil {
		log.Printf("❌ Failed to list bookings: %v", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

func (s *Server) BookingStatsHandler(c *gin.Context) {
	stats, err := s.Bookings.Stats()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) GetBookingHandler(c *gin.Context) {
	booking, err := s.Bookings.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *Server) CancelBookingHandler(c *gin.Context) {
	id := c.Param("id")
	if err := s.Bookings.Cancel(id); err != nil {
		abortWithError(c, err)
		return
	}
	booking, err := s.Bookings.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	log.Printf("🚫 Booking %s cancelled", booking.ConfirmationCode)
	c.JSON(http.StatusOK, booking)
}

func (s *Server) DeleteBookingHandler(c *gin.Context) {
	if err := s.Bookings.Remove(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
