package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goginie/models"
)

func TestRailway_FallsThroughFailingEndpoint(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trains/between-stations", r.URL.Path)
		assert.Equal(t, "NDLS", r.URL.Query().Get("from"))
		w.Write([]byte(`{"data":[{"train_number":"12951","train_name":"Mumbai Rajdhani",
			"classes":[{"name":"3A","fare":"2,105"},{"className":"2A","fare":2950,"available":false}],
			"distance":1384}]}`))
	}))
	defer up.Close()

	c := &Catalog{Railway: NewRailwayClient([]string{down.URL, up.URL}, "")}
	resp := c.SearchTrains(context.Background(), models.TrainSearch{From: "NDLS", To: "MMCT", DepartureDate: "2026-03-01"})

	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.NotEqual(t, SourceMock, resp.Source)

	tr := resp.Data[0]
	assert.Equal(t, "12951", tr.ID)
	assert.Equal(t, "Mumbai Rajdhani", tr.Name)
	assert.Equal(t, "NDLS", tr.From, "missing station names default to the query")
	assert.Equal(t, "1384", tr.Distance)
	assert.Equal(t, []string{"Daily"}, tr.Days)
	require.Len(t, tr.Classes, 2)
	assert.Equal(t, 2105.0, tr.Classes[0].Fare)
	assert.False(t, tr.Classes[1].Available)
	assert.Equal(t, 2105.0, tr.UnitPrice(), "unit price ignores unavailable classes")
}

func TestRailway_AllEndpointsEmptyUsesCannedTrains(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"trains":[]}`))
	}))
	defer empty.Close()

	c := &Catalog{Railway: NewRailwayClient([]string{empty.URL}, "")}
	resp := c.SearchTrains(context.Background(), models.TrainSearch{From: "NDLS", To: "BCT", DepartureDate: "2026-03-01"})

	require.True(t, resp.Success)
	assert.Equal(t, SourceMock, resp.Source)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, "Rajdhani Express", resp.Data[0].Name)
	assert.Equal(t, 800.0, resp.Data[0].UnitPrice())
	assert.Equal(t, 300.0, resp.Data[3].UnitPrice())
	for _, tr := range resp.Data {
		assert.Equal(t, "NDLS", tr.From)
		assert.Equal(t, "BCT", tr.To)
	}
}

func TestRailway_RapidAPIHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, irctcHost, r.Header.Get("X-RapidAPI-Host"))
		w.Write([]byte(`{"data":[{"trainNumber":"22222","trainName":"Garib Rath"}]}`))
	}))
	defer srv.Close()

	c := NewRailwayClient([]string{"http://127.0.0.1:0"}, "secret")
	c.irctcURL = srv.URL
	providers := c.Providers()
	require.Len(t, providers, 2)

	trains, err := providers[1].Search(context.Background(), models.TrainSearch{From: "A", To: "B"})
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Len(t, trains[0].Classes, 3, "default classes when none are listed")
}

func TestRailway_MissingStations(t *testing.T) {
	c := &Catalog{Railway: NewRailwayClient(nil, "")}
	resp := c.SearchTrains(context.Background(), models.TrainSearch{From: "NDLS"})
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, resp.Total)
}
