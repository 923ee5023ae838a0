package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"goginie/models"
)

// ─── OpenWeatherMap ───────────────────────────────────────────────────────────

type Coordinates struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
}

type WeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewWeatherClient(apiKey string) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *WeatherClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Geocode resolves a place name. A miss returns (nil, nil).
func (c *WeatherClient) Geocode(ctx context.Context, location string) (*Coordinates, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("openweather: %w", models.ErrMissingConfiguration)
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("limit", "1")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/geo/1.0/direct?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var results []Coordinates
	if err := getJSON(ctx, c.httpClient, req, &results); err != nil {
		return nil, fmt.Errorf("geocode failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

type owmWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// CurrentWeather returns current conditions in metric units.
func (c *WeatherClient) CurrentWeather(ctx context.Context, location string) (*Weather, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("openweather: %w", models.ErrMissingConfiguration)
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp owmWeatherResponse
	if err := getJSON(ctx, c.httpClient, req, &resp); err != nil {
		return nil, fmt.Errorf("weather lookup failed: %w", err)
	}

	w := &Weather{
		Temperature: resp.Main.Temp,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		City:        resp.Name,
		Country:     resp.Sys.Country,
	}
	if len(resp.Weather) > 0 {
		w.Condition = resp.Weather[0].Main
		w.Description = resp.Weather[0].Description
		w.Icon = resp.Weather[0].Icon
	}
	return w, nil
}
