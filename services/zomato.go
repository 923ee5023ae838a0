package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goginie/models"
)

// ─── Zomato Client ────────────────────────────────────────────────────────────

type ZomatoClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewZomatoClient(apiKey string) *ZomatoClient {
	return &ZomatoClient{
		apiKey:  apiKey,
		baseURL: "https://developers.zomato.com/api/v2.1",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *ZomatoClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

func (c *ZomatoClient) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("user-key", c.apiKey)
	return getJSON(ctx, c.httpClient, req, out)
}

type zomatoCitiesResponse struct {
	LocationSuggestions []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"location_suggestions"`
}

type zomatoSearchResponse struct {
	Restaurants []struct {
		Restaurant struct {
			ID         flexString `json:"id"`
			Name       string     `json:"name"`
			Cuisines   string     `json:"cuisines"`
			PriceRange int        `json:"price_range"`
			CostForTwo flexFloat  `json:"average_cost_for_two"`
			UserRating struct {
				AggregateRating flexFloat `json:"aggregate_rating"`
			} `json:"user_rating"`
			Location struct {
				Address string `json:"address"`
			} `json:"location"`
			PhoneNumbers string   `json:"phone_numbers"`
			Highlights   []string `json:"highlights"`
			Timings      string   `json:"timings"`
		} `json:"restaurant"`
	} `json:"restaurants"`
}

// SearchRestaurants resolves the city id, then searches restaurants in it.
func (c *ZomatoClient) SearchRestaurants(ctx context.Context, p models.RestaurantSearch) ([]models.Restaurant, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("zomato: %w", models.ErrMissingConfiguration)
	}

	var cities zomatoCitiesResponse
	if err := c.get(ctx, "/cities", url.Values{"q": {p.Location}}, &cities); err != nil {
		return nil, fmt.Errorf("city lookup failed: %w", err)
	}
	if len(cities.LocationSuggestions) == 0 {
		return nil, fmt.Errorf("city not found: %s", p.Location)
	}

	q := url.Values{}
	q.Set("entity_id", fmt.Sprint(cities.LocationSuggestions[0].ID))
	q.Set("entity_type", "city")
	q.Set("count", "10")
	if p.Cuisine != "" {
		q.Set("cuisines", p.Cuisine)
	}

	var resp zomatoSearchResponse
	if err := c.get(ctx, "/search", q, &resp); err != nil {
		return nil, fmt.Errorf("restaurant search failed: %w", err)
	}

	out := make([]models.Restaurant, 0, len(resp.Restaurants))
	for _, item := range resp.Restaurants {
		r := item.Restaurant

		var dietary []string
		for _, h := range r.Highlights {
			if strings.Contains(h, "Vegetarian") || strings.Contains(h, "Vegan") || strings.Contains(h, "Gluten") {
				dietary = append(dietary, h)
			}
		}

		out = append(out, models.Restaurant{
			ID:             string(r.ID),
			Name:           r.Name,
			Cuisine:        r.Cuisines,
			Rating:         float64(r.UserRating.AggregateRating),
			PriceRange:     r.PriceRange,
			AverageCost:    float64(r.CostForTwo) / 2,
			Address:        r.Location.Address,
			Phone:          r.PhoneNumbers,
			Specialties:    r.Highlights,
			DietaryOptions: dietary,
			LunchHours:     firstNonEmpty(r.Timings, "12:00 - 15:00"),
			DinnerHours:    firstNonEmpty(r.Timings, "19:00 - 23:00"),
		})
	}
	return out, nil
}

// ─── Fallback ─────────────────────────────────────────────────────────────────

func MockRestaurants(p models.RestaurantSearch) []models.Restaurant {
	return []models.Restaurant{
		{
			ID:             "rest_1",
			Name:           "Fine Dining Restaurant",
			Cuisine:        firstNonEmpty(p.Cuisine, "International"),
			Rating:         4.5,
			PriceRange:     4,
			AverageCost:    2000,
			Address:        p.Location + " City Center",
			Phone:          "+91 98765 43210",
			Specialties:    []string{"Fine Dining", "Romantic", "Business"},
			DietaryOptions: []string{"Vegetarian", "Vegan"},
			LunchHours:     "12:00 - 15:00",
			DinnerHours:    "19:00 - 23:00",
		},
		{
			ID:             "rest_2",
			Name:           "Local Cuisine Spot",
			Cuisine:        "Local",
			Rating:         4.2,
			PriceRange:     2,
			AverageCost:    600,
			Address:        p.Location + " Downtown",
			Phone:          "+91 98765 43211",
			Specialties:    []string{"Local Food", "Family Friendly"},
			DietaryOptions: []string{"Vegetarian"},
			LunchHours:     "11:00 - 16:00",
			DinnerHours:    "18:00 - 22:00",
		},
	}
}
