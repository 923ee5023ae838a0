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

func TestWeatherClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "owm", r.URL.Query().Get("appid"))
		switch r.URL.Path {
		case "/geo/1.0/direct":
			if r.URL.Query().Get("q") == "Nowhere" {
				w.Write([]byte(`[]`))
				return
			}
			w.Write([]byte(`[{"name":"Jaipur","lat":26.91,"lon":75.79}]`))
		case "/data/2.5/weather":
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			w.Write([]byte(`{"name":"Jaipur","main":{"temp":31.5,"humidity":20},
				"weather":[{"main":"Clear","description":"clear sky","icon":"01d"}],
				"wind":{"speed":3.2},"sys":{"country":"IN"}}`))
		}
	}))
	defer srv.Close()

	c := NewWeatherClient("owm")
	c.baseURL = srv.URL

	coords, err := c.Geocode(context.Background(), "Jaipur")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 26.91, coords.Lat)

	missing, err := c.Geocode(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Nil(t, missing)

	w, err := c.CurrentWeather(context.Background(), "Jaipur")
	require.NoError(t, err)
	assert.Equal(t, "Clear", w.Condition)
	assert.Equal(t, "IN", w.Country)
	assert.Equal(t, 31.5, w.Temperature)
}

func TestWeatherClient_Unconfigured(t *testing.T) {
	_, err := NewWeatherClient("").CurrentWeather(context.Background(), "Jaipur")
	assert.ErrorIs(t, err, models.ErrMissingConfiguration)
}
