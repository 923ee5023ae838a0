package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goginie/config"
	"goginie/models"
)

type fakeSaver struct {
	mu      sync.Mutex
	records []models.BookingRecord
	err     error
}

func (f *fakeSaver) Add(r models.BookingRecord) (*models.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.records = append(f.records, r)
	return &r, nil
}

// offlineCatalog has no remote providers, so every search resolves to mock data.
func offlineCatalog(store BookingSaver) *Catalog {
	return NewCatalog(&config.Config{AmadeusEnv: "test", RailwayEndpoints: []string{"http://127.0.0.1:1"}}, store)
}

func TestCatalog_SearchFlightsWithoutAmadeus(t *testing.T) {
	c := offlineCatalog(nil)

	resp := c.SearchFlights(context.Background(), models.FlightSearch{From: "DEL", To: "GOI", DepartureDate: "2026-03-01"})
	require.True(t, resp.Success)
	assert.Equal(t, SourceMock, resp.Source)
	assert.Equal(t, len(resp.Data), resp.Total)
	assert.NotEmpty(t, resp.Data)

	bad := c.SearchFlights(context.Background(), models.FlightSearch{From: "DEL", To: "GOI"})
	assert.False(t, bad.Success)
	assert.Contains(t, bad.Error, "departure_date")
	assert.Empty(t, bad.Data)
}

func TestCatalog_SearchHotelsNightlyCeiling(t *testing.T) {
	c := offlineCatalog(nil)

	all := c.SearchHotels(context.Background(), models.HotelSearch{Location: "Goa", CheckIn: "2026-03-01"})
	require.True(t, all.Success)
	assert.Len(t, all.Data, 3)

	capped := c.SearchHotels(context.Background(), models.HotelSearch{Location: "Goa", CheckIn: "2026-03-01", MaxNightlyRate: 8000})
	require.True(t, capped.Success)
	require.Len(t, capped.Data, 2)
	assert.Equal(t, 2, capped.Total)
	for _, h := range capped.Data {
		assert.LessOrEqual(t, h.Price, 8000.0)
	}

	none := c.SearchHotels(context.Background(), models.HotelSearch{Location: "Goa", CheckIn: "2026-03-01", MaxNightlyRate: 1000})
	assert.True(t, none.Success)
	assert.Empty(t, none.Data)
	assert.Equal(t, 0, none.Total)
}

func TestCatalog_SearchHotelsViaRapidAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key", r.Header.Get("X-RapidAPI-Key"))
		w.Write([]byte(`{"hotels":[{"id":42,"name":"Sea View","address":"Calangute","rating":4.1,"price":50}]}`))
	}))
	defer srv.Close()

	c := offlineCatalog(nil)
	c.RapidHotels = NewRapidHotelsClient("key")
	c.RapidHotels.baseURL = srv.URL

	resp := c.SearchHotels(context.Background(), models.HotelSearch{Location: "Goa", CheckIn: "2026-03-01"})
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, hotelsHost, resp.Source)
	assert.Equal(t, "42", resp.Data[0].ID)
	assert.Equal(t, 4150.0, resp.Data[0].Price, "USD converted to INR")
	assert.Equal(t, "Standard Room", resp.Data[0].RoomType)
}

func TestCatalog_SearchRestaurants(t *testing.T) {
	c := offlineCatalog(nil)

	resp := c.SearchRestaurants(context.Background(), models.RestaurantSearch{Location: "Jaipur", Cuisine: "Rajasthani"})
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Rajasthani", resp.Data[0].Cuisine)
	assert.Equal(t, 2000.0, resp.Data[0].UnitPrice())

	bad := c.SearchRestaurants(context.Background(), models.RestaurantSearch{})
	assert.False(t, bad.Success)
}

func TestCatalog_SearchRestaurantsViaZomato(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "zkey", r.Header.Get("user-key"))
		switch r.URL.Path {
		case "/cities":
			w.Write([]byte(`{"location_suggestions":[{"id":11,"name":"Jaipur"}]}`))
		case "/search":
			assert.Equal(t, "11", r.URL.Query().Get("entity_id"))
			w.Write([]byte(`{"restaurants":[{"restaurant":{"id":"9","name":"LMB","cuisines":"Rajasthani",
				"price_range":3,"average_cost_for_two":1200,"user_rating":{"aggregate_rating":"4.4"},
				"location":{"address":"Johari Bazaar"},"highlights":["Pure Vegetarian","Desserts"]}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := offlineCatalog(nil)
	c.Zomato = NewZomatoClient("zkey")
	c.Zomato.baseURL = srv.URL

	resp := c.SearchRestaurants(context.Background(), models.RestaurantSearch{Location: "Jaipur"})
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	r := resp.Data[0]
	assert.Equal(t, 600.0, r.AverageCost)
	assert.Equal(t, 4.4, r.Rating)
	assert.Equal(t, []string{"Pure Vegetarian"}, r.DietaryOptions)
}

func TestCatalog_SearchCabs(t *testing.T) {
	c := offlineCatalog(nil)

	resp := c.SearchCabs(context.Background(), models.CabSearch{From: "Airport", To: "Old City"})
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 3)

	route := EstimateRoute("Airport", "Old City")
	assert.GreaterOrEqual(t, route.DistanceKm, 10.0)
	assert.Less(t, route.DistanceKm, 60.0)

	economy := CabFare(route.DistanceKm)
	assert.Equal(t, 50+12*route.DistanceKm, economy)
	assert.Equal(t, economy, resp.Data[0].Price)
	assert.Equal(t, economy*2, resp.Data[2].Price)

	again := c.SearchCabs(context.Background(), models.CabSearch{From: "Airport", To: "Old City"})
	assert.Equal(t, resp.Data, again.Data)

	missing := c.SearchCabs(context.Background(), models.CabSearch{From: "Airport"})
	assert.False(t, missing.Success)
	assert.Empty(t, missing.Data)
	assert.Equal(t, 0, missing.Total)
}

func TestCatalog_BookPersistsRecord(t *testing.T) {
	store := &fakeSaver{}
	c := offlineCatalog(store)

	before := time.Now().UTC()
	resp := c.BookHotel(context.Background(), models.BookingRequest{
		ItemID: "hotel_2", Title: "Budget Inn", Amount: 10500, Guests: 2, Date: "2026-03-01", TripCode: "GGABC123",
	})
	require.True(t, resp.Success, resp.Error)
	require.NotNil(t, resp.Data)

	rec := resp.Data
	assert.Equal(t, models.BookingHotel, rec.Type)
	assert.Equal(t, models.StatusConfirmed, rec.Status)
	assert.Equal(t, 10500.0, rec.Amount)
	assert.Equal(t, "GGABC123", rec.TripCode)
	assert.Equal(t, "2", rec.Details["guests"])
	assert.True(t, strings.HasPrefix(rec.ConfirmationCode, "HOT"))
	assert.Len(t, rec.ConfirmationCode, 12)
	assert.False(t, rec.Timestamp.Before(before.Truncate(time.Second)))
	require.Len(t, store.records, 1)
	assert.Equal(t, rec.ID, store.records[0].ID)
}

func TestCatalog_BookIDsAreUnique(t *testing.T) {
	store := &fakeSaver{}
	c := offlineCatalog(store)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		resp := c.BookCab(context.Background(), models.BookingRequest{ItemID: "cab_1", Amount: 300})
		require.True(t, resp.Success)
		assert.False(t, seen[resp.Data.ID])
		seen[resp.Data.ID] = true
	}
}

func TestCatalog_BookFailures(t *testing.T) {
	store := &fakeSaver{err: errors.New("disk full")}
	c := offlineCatalog(store)

	resp := c.BookFlight(context.Background(), models.BookingRequest{ItemID: "mock-flight-1", Amount: 5200})
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Contains(t, resp.Error, "disk full")

	missing := offlineCatalog(&fakeSaver{}).BookTrain(context.Background(), models.BookingRequest{})
	assert.False(t, missing.Success)
	assert.Contains(t, missing.Error, "item_id")
}
