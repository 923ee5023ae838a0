package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goginie/orchestrator"
	"goginie/services"
)

// ReceiptHandler renders a booking receipt PDF.
func (s *Server) ReceiptHandler(c *gin.Context) {
	booking, err := s.Bookings.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	pdfBytes, err := services.GenerateReceiptPDF(*booking)
	if err != nil {
		log.Printf("❌ Receipt generation failed for %s: %v", booking.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}
	sendPDF(c, "goginie-receipt-"+booking.ConfirmationCode+".pdf", pdfBytes)
}

// TripSummaryHandler renders the plan and booking outcome of a run.
func (s *Server) TripSummaryHandler(c *gin.Context) {
	run, err := s.Agent.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if run.Plan == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Trip has no plan yet"})
		return
	}

	pdfBytes, err := orchestrator.SummaryPDF(run)
	if err != nil {
		log.Printf("❌ Trip summary generation failed for %s: %v", run.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trip summary"})
		return
	}

	name := "goginie-trip.pdf"
	if run.ConfirmationCode != "" {
		name = "goginie-trip-" + run.ConfirmationCode + ".pdf"
	}
	sendPDF(c, name, pdfBytes)
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}
