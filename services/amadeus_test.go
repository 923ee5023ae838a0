package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goginie/models"
)

func newAmadeusTestServer(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Write([]byte(`{"access_token":"tok","expires_in":1799}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "DEL", r.URL.Query().Get("originLocationCode"))
		assert.Equal(t, "BUSINESS", r.URL.Query().Get("travelClass"))
		assert.Equal(t, "INR", r.URL.Query().Get("currencyCode"))
		w.Write([]byte(`{"data":[
			{"id":"1","price":{"grandTotal":"7450.00","currency":"INR"},
			 "itineraries":[{"duration":"PT2H10M","segments":[
				{"departure":{"iataCode":"DEL","at":"2026-03-01T06:00:00"},"arrival":{"iataCode":"BOM","at":"2026-03-01T08:10:00"},"carrierCode":"6E","number":"201"}
			 ]}]},
			{"id":"2","price":{"grandTotal":"0","currency":"INR"},
			 "itineraries":[{"duration":"PT2H","segments":[
				{"departure":{"iataCode":"DEL","at":"x"},"arrival":{"iataCode":"BOM","at":"y"},"carrierCode":"AI","number":"1"}
			 ]}]}
		]}`))
	})
	return httptest.NewServer(mux)
}

func TestAmadeus_SearchFlights(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusTestServer(t, &tokenCalls)
	defer srv.Close()

	c := NewAmadeusClient("id", "secret", "test")
	c.baseURL = srv.URL

	flights, err := c.SearchFlights(context.Background(), models.FlightSearch{
		From: "del", To: "bom", DepartureDate: "2026-03-01", Passengers: 2, Class: "business",
	})
	require.NoError(t, err)
	require.Len(t, flights, 1, "zero-priced offers are skipped")

	f := flights[0]
	assert.Equal(t, "amadeus-1", f.ID)
	assert.Equal(t, "IndiGo", f.Airline)
	assert.Equal(t, "6E201", f.FlightNumber)
	assert.Equal(t, "2h 10m", f.Duration)
	assert.Equal(t, 0, f.Stops)
	assert.Equal(t, 7450.0, f.Price)

	// token is cached between calls
	_, err = c.SearchFlights(context.Background(), models.FlightSearch{From: "DEL", To: "BOM", DepartureDate: "2026-03-01", Class: "business"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestAmadeus_UnconfiguredClient(t *testing.T) {
	c := NewAmadeusClient("", "", "test")
	assert.False(t, c.Configured())

	_, err := c.SearchFlights(context.Background(), models.FlightSearch{From: "DEL", To: "BOM"})
	assert.ErrorIs(t, err, models.ErrMissingConfiguration)
}

func TestAmadeus_HotelsRejectFreeTextLocation(t *testing.T) {
	c := NewAmadeusClient("id", "secret", "test")
	_, err := c.SearchHotels(context.Background(), models.HotelSearch{Location: "Goa beaches"})
	assert.Error(t, err)
}

func TestGenerateFlightsFallback(t *testing.T) {
	p := models.FlightSearch{From: "DEL", To: "BOM", DepartureDate: "2026-03-01", Class: "economy"}

	a := GenerateFlightsFallback(p)
	b := GenerateFlightsFallback(p)
	require.Len(t, a, 5)
	assert.Equal(t, a, b, "fallback data is deterministic")

	for _, f := range a {
		assert.Equal(t, "INR", f.Currency)
		assert.Greater(t, f.Price, 0.0)
		assert.NotEmpty(t, f.ID)
	}
	assert.Equal(t, 5200.0, a[0].Price)
	assert.Equal(t, "IndiGo", a[0].Airline)

	business := GenerateFlightsFallback(models.FlightSearch{From: "DEL", To: "BOM", DepartureDate: "2026-03-01", Class: "business"})
	assert.Equal(t, 15600.0, business[0].Price)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, "5h 30m", parseDuration("PT5H30M"))
	assert.Equal(t, "2h", parseDuration("PT2H"))
	assert.Equal(t, "45m", parseDuration("PT45M"))
	assert.Equal(t, "", parseDuration(""))
}
