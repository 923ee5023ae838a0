package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goginie/models"
)

// ─── Railway Client ───────────────────────────────────────────────────────────

var defaultRailwayEndpoints = []string{
	"https://indian-railway-api.herokuapp.com",
	"https://railway-api.herokuapp.com",
}

const irctcHost = "irctc1.p.rapidapi.com"

// RailwayClient queries the public between-stations endpoints in order, then
// the RapidAPI IRCTC endpoint when a key is configured.
type RailwayClient struct {
	endpoints  []string
	irctcURL   string
	apiKey     string
	httpClient *http.Client
}

func NewRailwayClient(endpoints []string, apiKey string) *RailwayClient {
	if len(endpoints) == 0 {
		endpoints = defaultRailwayEndpoints
	}
	return &RailwayClient{
		endpoints: endpoints,
		irctcURL:  "https://" + irctcHost + "/api/v1",
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Providers returns one chain entry per configured endpoint.
func (c *RailwayClient) Providers() []Provider[models.TrainSearch, models.Train] {
	var out []Provider[models.TrainSearch, models.Train]
	for _, base := range c.endpoints {
		base := strings.TrimRight(base, "/")
		out = append(out, Provider[models.TrainSearch, models.Train]{
			Name: hostOf(base),
			Search: func(ctx context.Context, p models.TrainSearch) ([]models.Train, error) {
				return c.search(ctx, base+"/trains/between-stations", p, nil)
			},
		})
	}
	if c.apiKey != "" {
		out = append(out, Provider[models.TrainSearch, models.Train]{
			Name: irctcHost,
			Search: func(ctx context.Context, p models.TrainSearch) ([]models.Train, error) {
				return c.search(ctx, c.irctcURL+"/searchTrain", p, map[string]string{
					"X-RapidAPI-Key":  c.apiKey,
					"X-RapidAPI-Host": irctcHost,
				})
			},
		})
	}
	return out
}

func (c *RailwayClient) search(ctx context.Context, endpoint string, p models.TrainSearch, headers map[string]string) ([]models.Train, error) {
	q := url.Values{}
	q.Set("from", p.From)
	q.Set("to", p.To)
	q.Set("date", p.DepartureDate)

	req, err := http.NewRequest(http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	var resp railwayResponse
	if err := getJSON(ctx, c.httpClient, req, &resp); err != nil {
		return nil, err
	}

	rows := resp.Trains
	if len(rows) == 0 {
		rows = resp.Data
	}

	trains := make([]models.Train, 0, len(rows))
	for i, raw := range rows {
		trains = append(trains, raw.toTrain(p, i))
	}
	return trains, nil
}

// Different railway APIs disagree on field names; accept the common ones.
type railwayResponse struct {
	Trains []railwayTrain `json:"trains"`
	Data   []railwayTrain `json:"data"`
}

type railwayTrain struct {
	ID              string         `json:"id"`
	TrainNumber     string         `json:"trainNumber"`
	TrainNo         string         `json:"train_number"`
	Number          string         `json:"number"`
	TrainName       string         `json:"trainName"`
	TrainNameSnake  string         `json:"train_name"`
	Name            string         `json:"name"`
	FromStationName string         `json:"fromStationName"`
	From            string         `json:"from"`
	ToStationName   string         `json:"toStationName"`
	To              string         `json:"to"`
	DepartureTime   string         `json:"departureTime"`
	Departure       string         `json:"departure"`
	ArrivalTime     string         `json:"arrivalTime"`
	Arrival         string         `json:"arrival"`
	Duration        string         `json:"duration"`
	RunningDays     []string       `json:"runningDays"`
	Days            []string       `json:"days"`
	Classes         []railwayClass `json:"classes"`
	Amenities       []string       `json:"amenities"`
	TrainType       string         `json:"trainType"`
	Type            string         `json:"type"`
	Distance        flexString     `json:"distance"`
}

type railwayClass struct {
	ClassName string    `json:"className"`
	Name      string    `json:"name"`
	Fare      flexFloat `json:"fare"`
	Available *bool     `json:"available"`
}

func (r railwayTrain) toTrain(p models.TrainSearch, idx int) models.Train {
	number := firstNonEmpty(r.TrainNumber, r.TrainNo, r.Number)
	t := models.Train{
		ID:        firstNonEmpty(number, r.ID, fmt.Sprintf("train-%d", idx+1)),
		Name:      firstNonEmpty(r.TrainName, r.TrainNameSnake, r.Name, "Unknown Train"),
		Number:    firstNonEmpty(number, "N/A"),
		From:      firstNonEmpty(r.FromStationName, r.From, p.From),
		To:        firstNonEmpty(r.ToStationName, r.To, p.To),
		Departure: firstNonEmpty(r.DepartureTime, r.Departure, "N/A"),
		Arrival:   firstNonEmpty(r.ArrivalTime, r.Arrival, "N/A"),
		Duration:  firstNonEmpty(r.Duration, "N/A"),
		Days:      r.RunningDays,
		Amenities: r.Amenities,
		Type:      firstNonEmpty(r.TrainType, r.Type, "Express"),
		Distance:  firstNonEmpty(string(r.Distance), "500 km"),
	}
	if len(t.Days) == 0 {
		t.Days = r.Days
	}
	if len(t.Days) == 0 {
		t.Days = []string{"Daily"}
	}
	if len(t.Amenities) == 0 {
		t.Amenities = []string{"AC", "Food", "WiFi"}
	}

	for _, cls := range r.Classes {
		fare := float64(cls.Fare)
		if fare <= 0 {
			fare = 100
		}
		t.Classes = append(t.Classes, models.TrainClass{
			Name:      firstNonEmpty(cls.ClassName, cls.Name, "General"),
			Fare:      fare,
			Available: cls.Available == nil || *cls.Available,
		})
	}
	if len(t.Classes) == 0 {
		t.Classes = []models.TrainClass{
			{Name: "AC 1st Class", Fare: 2500, Available: true},
			{Name: "AC 2nd Class", Fare: 1500, Available: true},
			{Name: "AC 3rd Class", Fare: 800, Available: true},
		}
	}
	return t
}

// ─── Fallback ─────────────────────────────────────────────────────────────────

// MockTrains returns the four canned trains for any route.
func MockTrains(p models.TrainSearch) []models.Train {
	mk := func(id, name, dep, arr string, days []string, classes []models.TrainClass, amenities []string) models.Train {
		return models.Train{
			ID:        id,
			Name:      name,
			Number:    id,
			From:      p.From,
			To:        p.To,
			Departure: dep,
			Arrival:   arr,
			Duration:  "8h 0m",
			Days:      days,
			Classes:   classes,
			Amenities: amenities,
			Type:      "Express",
			Distance:  "500 km",
		}
	}

	return []models.Train{
		mk("12345", "Rajdhani Express", "06:00", "14:00",
			[]string{"Mon", "Wed", "Fri"},
			[]models.TrainClass{
				{Name: "AC 1st Class", Fare: 2500, Available: true},
				{Name: "AC 2nd Class", Fare: 1500, Available: true},
				{Name: "AC 3rd Class", Fare: 800, Available: true},
			},
			[]string{"AC", "Food", "WiFi"}),
		mk("67890", "Shatabdi Express", "08:00", "16:00",
			[]string{"Tue", "Thu", "Sat"},
			[]models.TrainClass{
				{Name: "AC Chair Car", Fare: 1200, Available: true},
				{Name: "AC Executive", Fare: 2000, Available: true},
			},
			[]string{"AC", "Food", "WiFi", "Newspaper"}),
		mk("11111", "Duronto Express", "22:00", "06:00",
			[]string{"Daily"},
			[]models.TrainClass{
				{Name: "AC 2nd Class", Fare: 1800, Available: true},
				{Name: "AC 3rd Class", Fare: 1000, Available: true},
				{Name: "Sleeper", Fare: 400, Available: true},
			},
			[]string{"AC", "Food", "WiFi", "Bedding"}),
		mk("22222", "Garib Rath Express", "12:00", "20:00",
			[]string{"Daily"},
			[]models.TrainClass{
				{Name: "AC 3rd Class", Fare: 600, Available: true},
				{Name: "Sleeper", Fare: 300, Available: true},
			},
			[]string{"AC", "Food"}),
	}
}

// ─── Loose JSON ───────────────────────────────────────────────────────────────

// flexFloat accepts 1200, 1200.5, "1200" or "₹1,200".
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	s = strings.TrimLeft(s, "₹$€£ ")
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	var v float64
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, ",", ""), "%g", &v); err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	*f = flexFloat(v)
	return nil
}

// flexString accepts strings and bare numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(strings.TrimSpace(string(b)))
	if *f == "null" {
		*f = ""
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
