package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"goginie/models"
	"goginie/orchestrator"
)

// StartTripHandler plans a new trip up to review. With ?async=true it
// returns 202 immediately and the run continues in the background.
func (s *Server) StartTripHandler(c *gin.Context) {
	var prefs models.TripPreferences
	if !bindJSON(c, &prefs) {
		return
	}

	if c.Query("async") == "true" {
		run, err := s.Agent.Submit(prefs)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, run)
		return
	}

	run, err := s.Agent.Start(c.Request.Context(), prefs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

func (s *Server) ListTripsHandler(c *gin.Context) {
	runs := s.Agent.List()
	c.JSON(http.StatusOK, gin.H{"data": runs, "total": len(runs)})
}

func (s *Server) GetTripHandler(c *gin.Context) {
	respondRun(c)(s.Agent.Get(c.Param("id")))
}

func (s *Server) ApproveTripHandler(c *gin.Context) {
	respondRun(c)(s.Agent.Approve(c.Request.Context(), c.Param("id")))
}

func (s *Server) RejectTripHandler(c *gin.Context) {
	respondRun(c)(s.Agent.Reject(c.Param("id")))
}

func (s *Server) RetryTripHandler(c *gin.Context) {
	respondRun(c)(s.Agent.Retry(c.Request.Context(), c.Param("id")))
}

func (s *Server) RestartTripHandler(c *gin.Context) {
	respondRun(c)(s.Agent.Restart(c.Request.Context(), c.Param("id")))
}

type alternativeDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (s *Server) AlternativeDateHandler(c *gin.Context) {
	var req alternativeDateRequest
	if !bindJSON(c, &req) {
		return
	}
	respondRun(c)(s.Agent.SelectAlternativeDate(c.Request.Context(), c.Param("id"), req.Date))
}

func respondRun(c *gin.Context) func(orchestrator.Run, error) {
	return func(run orchestrator.Run, err error) {
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, run)
	}
}

// TripEventsHandler streams a run's events as server-sent events. The first
// event is a snapshot of the run; the stream ends when the client leaves.
func (s *Server) TripEventsHandler(c *gin.Context) {
	run, err := s.Agent.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if s.Bus == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Event stream is not enabled"})
		return
	}

	ctx := c.Request.Context()
	ch, err := s.Bus.SubscribeRun(ctx, run.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", run)
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case e, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(e.Kind), e)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
