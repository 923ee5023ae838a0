package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"goginie/models"
)

// ─── RapidAPI Hotels ──────────────────────────────────────────────────────────

const hotelsHost = "hotels-com-provider.p.rapidapi.com"

// usdToINR converts the provider's USD prices.
const usdToINR = 83

type RapidHotelsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewRapidHotelsClient(apiKey string) *RapidHotelsClient {
	return &RapidHotelsClient{
		apiKey:  apiKey,
		baseURL: "https://" + hotelsHost,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *RapidHotelsClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type rapidHotelsResponse struct {
	Hotels []struct {
		ID        flexString `json:"id"`
		Name      string     `json:"name"`
		Address   string     `json:"address"`
		Rating    flexFloat  `json:"rating"`
		Price     flexFloat  `json:"price"`
		Amenities []string   `json:"amenities"`
		RoomType  string     `json:"roomType"`
	} `json:"hotels"`
}

func (c *RapidHotelsClient) SearchHotels(ctx context.Context, p models.HotelSearch) ([]models.Hotel, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("rapidapi hotels: %w", models.ErrMissingConfiguration)
	}

	body, err := json.Marshal(map[string]any{
		"destination":  p.Location,
		"checkInDate":  p.CheckIn,
		"checkOutDate": p.CheckOut,
		"rooms":        max(1, p.Rooms),
		"adults":       max(1, p.Guests),
		"children":     0,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/hotels/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", hotelsHost)

	var resp rapidHotelsResponse
	if err := getJSON(ctx, c.httpClient, req, &resp); err != nil {
		return nil, err
	}

	hotels := make([]models.Hotel, 0, len(resp.Hotels))
	for _, h := range resp.Hotels {
		amenities := h.Amenities
		if len(amenities) == 0 {
			amenities = []string{"WiFi", "AC", "Parking"}
		}
		hotels = append(hotels, models.Hotel{
			ID:        string(h.ID),
			Name:      h.Name,
			Address:   h.Address,
			Rating:    float64(h.Rating),
			Price:     math.Round(float64(h.Price) * usdToINR),
			Currency:  "INR",
			Amenities: amenities,
			RoomType:  firstNonEmpty(h.RoomType, "Standard Room"),
		})
	}
	return hotels, nil
}

// ─── Fallback ─────────────────────────────────────────────────────────────────

// MockHotels returns three canned hotels spanning budget to luxury.
func MockHotels(p models.HotelSearch) []models.Hotel {
	return []models.Hotel{
		{
			ID:        "hotel_1",
			Name:      "Grand Palace Hotel",
			Address:   p.Location + " City Center",
			Rating:    4.5,
			Price:     8000,
			Currency:  "INR",
			Amenities: []string{"WiFi", "AC", "Parking", "Pool", "Gym"},
			RoomType:  "Deluxe Room",
		},
		{
			ID:        "hotel_2",
			Name:      "Budget Inn",
			Address:   p.Location + " Downtown",
			Rating:    3.8,
			Price:     3500,
			Currency:  "INR",
			Amenities: []string{"WiFi", "AC", "Parking"},
			RoomType:  "Standard Room",
		},
		{
			ID:        "hotel_3",
			Name:      "Luxury Resort",
			Address:   p.Location + " Beachfront",
			Rating:    4.9,
			Price:     15000,
			Currency:  "INR",
			Amenities: []string{"WiFi", "AC", "Parking", "Pool", "Spa", "Beach Access"},
			RoomType:  "Suite",
		},
	}
}

// withinNightlyRate drops hotels above the ceiling. A zero ceiling keeps all.
func withinNightlyRate(hotels []models.Hotel, ceiling float64) []models.Hotel {
	if ceiling <= 0 {
		return hotels
	}
	out := make([]models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if h.Price <= ceiling {
			out = append(out, h)
		}
	}
	return out
}
