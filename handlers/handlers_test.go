package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goginie/config"
	"goginie/database"
	"goginie/events"
	"goginie/models"
	"goginie/orchestrator"
	"goginie/services"
)

type testEnv struct {
	server *Server
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewBus()
	t.Cleanup(func() { bus.Close() })

	store := database.NewBookingStore(db)
	catalog := services.NewCatalog(&config.Config{
		AmadeusEnv:       "test",
		RailwayEndpoints: []string{"http://127.0.0.1:1"},
	}, store)
	planner := services.NewPlanner(nil, time.Second, 0.7)

	s := &Server{
		Catalog:  catalog,
		Planner:  planner,
		Agent:    orchestrator.New(planner, catalog, orchestrator.WithPublisher(bus)),
		Bookings: store,
		Bus:      bus,
		DB:       db,
	}
	r := gin.New()
	s.Register(r.Group("/api"))
	return &testEnv{server: s, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func goaTrip() models.TripPreferences {
	return models.TripPreferences{
		Destination:         "Goa",
		StartLocation:       "Delhi",
		Duration:            2,
		Budget:              60000,
		GroupSize:           2,
		TransportPreference: models.TransportFlight,
		DepartureDate:       "2026-11-20",
	}
}

// tripView decodes the parts of a run the tests look at. Choice offers are
// interface-typed and cannot be decoded back.
type tripView struct {
	ID               string  `json:"id"`
	Phase            string  `json:"phase"`
	TotalCost        float64 `json:"total_cost"`
	ConfirmationCode string  `json:"confirmation_code"`
	Bookings         []struct {
		Category string `json:"category"`
		Status   string `json:"status"`
	} `json:"bookings"`
}

// ─── Health & search ──────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["database"])
}

func TestSearch_Cabs(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/search/cabs", models.CabSearch{From: "Airport", To: "Baga Beach", Passengers: 2})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.SearchResponse[models.Cab]](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "estimate", resp.Source)
	assert.Len(t, resp.Data, 3)
}

func TestSearch_RestaurantsFallBackToMock(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/search/restaurants", models.RestaurantSearch{Location: "Goa", Cuisine: "Goan"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.SearchResponse[models.Restaurant]](t, w)
	assert.Equal(t, services.SourceMock, resp.Source)
	assert.NotEmpty(t, resp.Data)
}

func TestSearch_MissingFieldIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/search/flights", map[string]string{"from": "DEL"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/search/ferries", map[string]string{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ─── Bookings ─────────────────────────────────────────────────────────────────

func TestBookings_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/book/hotels", models.BookingRequest{
		ItemID: "hotel_1",
		Title:  "Grand Palace Hotel",
		Amount: 16000,
		Guests: 2,
		Date:   "2026-11-20",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booked := decode[models.BookingResponse](t, w)
	require.NotNil(t, booked.Data)
	id := booked.Data.ID
	assert.Equal(t, models.StatusConfirmed, booked.Data.Status)
	assert.True(t, strings.HasPrefix(booked.Data.ConfirmationCode, "HOT"))

	w = env.do(t, http.MethodGet, "/api/bookings?type=hotel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Data  []models.BookingRecord `json:"data"`
		Total int                    `json:"total"`
	}](t, w)
	assert.Equal(t, 1, list.Total)

	w = env.do(t, http.MethodGet, "/api/bookings?type=spaceship", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/bookings/"+id+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = env.do(t, http.MethodPost, "/api/bookings/"+id+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCancelled, decode[models.BookingRecord](t, w).Status)

	w = env.do(t, http.MethodGet, "/api/bookings/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.BookingStats](t, w)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Zero(t, stats.TotalSpent)

	w = env.do(t, http.MethodDelete, "/api/bookings/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/bookings/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBook_MissingItemIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/book/cabs", map[string]any{"amount": 500})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ─── Itinerary & trips ────────────────────────────────────────────────────────

func TestItinerary(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/itinerary", goaTrip())
	require.Equal(t, http.StatusOK, w.Code)
	it := decode[models.Itinerary](t, w)
	assert.Len(t, it.Days, 2)
	assert.Equal(t, models.ItinerarySourceMock, it.Source)

	for _, days := range []int{0, models.MaxTripDays + 1, math.MaxInt} {
		bad := goaTrip()
		bad.Duration = days
		w = env.do(t, http.MethodPost, "/api/itinerary", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code, "duration %d", days)
	}
}

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/recommendations/mood", models.MoodRequest{Mood: models.MoodHungry, Location: "Lucknow", TimePeriod: models.TimeNight})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	mood := decode[models.MoodRecommendations](t, w)
	assert.Equal(t, models.ItinerarySourceMock, mood.Source)
	require.NotEmpty(t, mood.Activities)
	assert.Equal(t, "Lucknow", mood.Activities[0].Location)

	w = env.do(t, http.MethodPost, "/api/recommendations/mood", models.MoodRequest{Mood: "sleepy", Location: "Lucknow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/recommendations/personalized", models.TripPreferences{Destination: "Lucknow", FoodPreference: "vegetarian"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	recs := decode[models.PersonalizedRecommendations](t, w)
	assert.Equal(t, "Lucknow", recs.Destination)
	assert.NotEmpty(t, recs.Hotels)

	w = env.do(t, http.MethodPost, "/api/recommendations/personalized", models.TripPreferences{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrips_StartApproveAndSummary(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/trips", goaTrip())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	run := decode[tripView](t, w)
	assert.Equal(t, "review", run.Phase)
	assert.Regexp(t, `^GG[0-9A-Z]{6}$`, run.ConfirmationCode)
	assert.Positive(t, run.TotalCost)

	w = env.do(t, http.MethodGet, "/api/trips/"+run.ID+"/summary.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), run.ConfirmationCode)

	w = env.do(t, http.MethodPost, "/api/trips/"+run.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	done := decode[tripView](t, w)
	assert.Equal(t, "complete", done.Phase)
	require.Len(t, done.Bookings, 3)
	for _, b := range done.Bookings {
		assert.Equal(t, "booked", b.Status, b.Category)
	}

	stats, err := env.server.Bookings.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Confirmed)
	assert.Equal(t, run.TotalCost, stats.TotalSpent)

	w = env.do(t, http.MethodPost, "/api/trips/"+run.ID+"/approve", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTrips_RejectAndUnknown(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/trips", goaTrip())
	require.Equal(t, http.StatusCreated, w.Code)
	run := decode[tripView](t, w)

	w = env.do(t, http.MethodPost, "/api/trips/"+run.ID+"/reject", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rejected", decode[tripView](t, w).Phase)

	list, err := env.server.Bookings.List(models.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	w = env.do(t, http.MethodGet, "/api/trips/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/trips/"+run.ID+"/alternative-date", map[string]string{"date": "2026-11-22"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "review", decode[tripView](t, w).Phase)
}

func TestTrips_InvalidPreferences(t *testing.T) {
	env := newTestEnv(t)

	bad := goaTrip()
	bad.DepartureDate = "20/11/2026"
	w := env.do(t, http.MethodPost, "/api/trips", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad = goaTrip()
	bad.Duration = 50_000_000
	w = env.do(t, http.MethodPost, "/api/trips", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duration")

	assert.Empty(t, env.server.Agent.List())
}

func TestTrips_EventStream(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	run, err := env.server.Agent.Start(context.Background(), goaTrip())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/trips/"+run.ID+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var seen []string
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "event:") {
			continue
		}
		name := strings.TrimPrefix(line, "event:")
		seen = append(seen, name)
		if name == "snapshot" {
			_, err := env.server.Agent.Reject(run.ID)
			require.NoError(t, err)
		}
		if name == string(events.PlanRejected) {
			break
		}
	}
	assert.Equal(t, []string{"snapshot", string(events.PhaseChanged), string(events.PlanRejected)}, seen)
}

func TestWeather_NotConfigured(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/weather?q=Goa", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = env.do(t, http.MethodGet, "/api/geocode", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
