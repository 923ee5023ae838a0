package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"goginie/config"
	"goginie/models"
)

// TextGenerator is a remote text-generation backend.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

const (
	defaultGenerationTimeout = 30 * time.Second
	defaultTemperature       = 0.7
)

const plannerSystemPrompt = "You are an expert travel planner. Create detailed, practical, and personalized itineraries. " +
	"Always return valid JSON with the exact structure requested. Include specific locations, realistic costs, and helpful tips."

// NewTextGenerator picks the backend named by AI_PROVIDER.
func NewTextGenerator(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	switch cfg.AIProvider {
	case "huggingface":
		gen, err := NewHuggingFaceGenerator(cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel)
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		gen, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return gen, nil
	}
}

// ─── Planner ──────────────────────────────────────────────────────────────────

// Planner turns trip preferences into an itinerary. Every generation failure
// degrades to MockItinerary; only invalid preferences produce an error.
type Planner struct {
	gen         TextGenerator
	timeout     time.Duration
	temperature float64
}

// NewPlanner accepts a nil generator, in which case every itinerary is mocked.
func NewPlanner(gen TextGenerator, timeout time.Duration, temperature float64) *Planner {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Planner{gen: gen, timeout: timeout, temperature: temperature}
}

func (p *Planner) Generate(ctx context.Context, prefs models.TripPreferences) (*models.Itinerary, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	prefs = prefs.WithDefaults()

	start := time.Now()
	text, ok := p.generateText(ctx, buildItineraryPrompt(prefs), p.temperature, "itinerary")
	if !ok {
		return MockItinerary(prefs), nil
	}

	it, err := parseItinerary(text, prefs)
	if err != nil {
		log.Printf("⚠️  %s returned an unusable itinerary: %v — using mock itinerary", p.gen.Name(), err)
		return MockItinerary(prefs), nil
	}

	log.Printf("✅ %s itinerary for %s generated in %s", p.gen.Name(), prefs.Destination, time.Since(start).Round(time.Millisecond))
	return it, nil
}

// generateText runs one prompt under the planner's timeout. ok is false when
// the caller should use its mock instead.
func (p *Planner) generateText(ctx context.Context, prompt string, temperature float64, what string) (string, bool) {
	if p.gen == nil {
		log.Printf("⚠️  No AI provider configured — using mock %s", what)
		return "", false
	}

	genCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.gen.Generate(genCtx, prompt, temperature)
	if err != nil {
		if genCtx.Err() == context.DeadlineExceeded {
			log.Printf("⏳ %s timed out after %s — using mock %s", p.gen.Name(), p.timeout, what)
		} else {
			log.Printf("⚠️  %s failed: %v — using mock %s", p.gen.Name(), err, what)
		}
		return "", false
	}
	return text, true
}

// ─── Prompt ───────────────────────────────────────────────────────────────────

func buildItineraryPrompt(p models.TripPreferences) string {
	interests := "general sightseeing"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	food := p.FoodPreference
	if food == "" {
		food = "no preference"
	}

	return fmt.Sprintf(`Create a detailed %d-day travel itinerary for %s starting from %s.

Travel Details:
- Duration: %d days (%s to %s)
- Budget: ₹%.0f for %d people
- Travel Style: %s
- Interests: %s
- Food Preference: %s
- Transport: %s

Return ONLY valid JSON (no markdown) with exactly %d entries in "itinerary" and this structure:
{
  "itinerary": [
    {
      "day": "Day 1",
      "date": "%s",
      "activities": [
        {"time": "09:00", "activity": "Morning sightseeing at [specific location]", "location": "[exact location name]", "cost": 500, "duration": "2 hours"}
      ]
    }
  ],
  "budgetBreakdown": {"accommodation": 0, "food": 0, "activities": 0, "transportation": 0},
  "recommendations": {
    "hotels": [{"name": "Hotel Name", "priceRange": "₹2000-3000/night", "rating": 4.5, "location": "City Center"}],
    "restaurants": [{"name": "Restaurant Name", "cuisine": "Local", "priceRange": "₹500-1000", "specialty": "Famous dish"}]
  },
  "packingList": ["passport", "clothes for %d days"],
  "localTips": ["Carry cash for local markets"]
}

Costs are numbers in INR. The budget breakdown must not exceed the total budget.
Make it practical, detailed, and personalized based on the interests and travel style.`,
		p.Duration, p.Destination, p.StartLocation,
		p.Duration, p.DepartureDate, p.ReturnDate,
		p.Budget, p.GroupSize,
		p.TravelStyle,
		interests,
		food,
		p.TransportPreference,
		p.Duration,
		p.DepartureDate,
		p.Duration,
	)
}

// ─── Response parsing ─────────────────────────────────────────────────────────

type rawItinerary struct {
	Itinerary []struct {
		Day        string `json:"day"`
		Date       string `json:"date"`
		Activities []struct {
			Time     string    `json:"time"`
			Activity string    `json:"activity"`
			Location string    `json:"location"`
			Cost     flexFloat `json:"cost"`
			Duration string    `json:"duration"`
		} `json:"activities"`
	} `json:"itinerary"`
	BudgetBreakdown map[string]flexFloat `json:"budgetBreakdown"`
	Recommendations struct {
		Hotels []struct {
			Name       string    `json:"name"`
			PriceRange string    `json:"priceRange"`
			Rating     flexFloat `json:"rating"`
			Location   string    `json:"location"`
		} `json:"hotels"`
		Restaurants []struct {
			Name       string `json:"name"`
			Cuisine    string `json:"cuisine"`
			PriceRange string `json:"priceRange"`
			Specialty  string `json:"specialty"`
		} `json:"restaurants"`
	} `json:"recommendations"`
	PackingList []string `json:"packingList"`
	LocalTips   []string `json:"localTips"`
}

// extractJSON strips code fences and returns the outermost {...} span.
func extractJSON(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object found", models.ErrMalformedResponse)
	}
	return cleaned[start : end+1], nil
}

// parseItinerary validates a model response against the itinerary schema.
func parseItinerary(text string, prefs models.TripPreferences) (*models.Itinerary, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var r rawItinerary
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}

	if len(r.Itinerary) != prefs.Duration {
		return nil, fmt.Errorf("%w: got %d days, want %d", models.ErrMalformedResponse, len(r.Itinerary), prefs.Duration)
	}

	dep, _ := time.Parse(models.DateLayout, prefs.DepartureDate)
	it := &models.Itinerary{
		Days:        make([]models.ItineraryDay, 0, len(r.Itinerary)),
		PackingList: r.PackingList,
		LocalTips:   r.LocalTips,
		Source:      models.ItinerarySourceAI,
	}

	for i, d := range r.Itinerary {
		if len(d.Activities) == 0 {
			return nil, fmt.Errorf("%w: day %d has no activities", models.ErrMalformedResponse, i+1)
		}
		day := models.ItineraryDay{
			Day:  firstNonEmpty(d.Day, fmt.Sprintf("Day %d", i+1)),
			Date: d.Date,
		}
		if _, err := time.Parse(models.DateLayout, day.Date); err != nil {
			day.Date = dep.AddDate(0, 0, i).Format(models.DateLayout)
		}
		for _, a := range d.Activities {
			if a.Cost < 0 {
				return nil, fmt.Errorf("%w: negative cost on day %d", models.ErrMalformedResponse, i+1)
			}
			day.Activities = append(day.Activities, models.Activity{
				Time:     a.Time,
				Activity: a.Activity,
				Location: a.Location,
				Cost:     float64(a.Cost),
				Duration: a.Duration,
			})
		}
		it.Days = append(it.Days, day)
	}

	it.BudgetBreakdown = coerceBreakdown(r.BudgetBreakdown, prefs.Budget)

	for _, h := range r.Recommendations.Hotels {
		it.Recommendations.Hotels = append(it.Recommendations.Hotels, models.HotelSuggestion{
			Name:       h.Name,
			PriceRange: h.PriceRange,
			Rating:     float64(h.Rating),
			Location:   h.Location,
		})
	}
	for _, rs := range r.Recommendations.Restaurants {
		it.Recommendations.Restaurants = append(it.Recommendations.Restaurants, models.RestaurantSuggestion{
			Name:       rs.Name,
			Cuisine:    rs.Cuisine,
			PriceRange: rs.PriceRange,
			Specialty:  rs.Specialty,
		})
	}
	return it, nil
}

// budgetCategories are the only keys a budget breakdown may carry.
var budgetCategories = []string{"accommodation", "food", "activities", "transportation"}

// coerceBreakdown keeps the canonical categories of a model's breakdown and
// fills the ones it left out from BudgetSplit. Negative amounts, or a filled
// breakdown that exceeds the budget, fall back to the standard split.
func coerceBreakdown(in map[string]flexFloat, budget float64) map[string]int {
	split := BudgetSplit(budget)
	if len(in) == 0 {
		return split
	}

	out := make(map[string]int, len(budgetCategories))
	var sum int
	for _, k := range budgetCategories {
		v, ok := in[k]
		switch {
		case !ok:
			out[k] = split[k]
		case v < 0:
			log.Printf("⚠️  Negative %s in budget breakdown — using standard split", k)
			return split
		default:
			out[k] = int(math.Floor(float64(v)))
		}
		sum += out[k]
	}
	for k := range in {
		if _, ok := split[k]; !ok {
			log.Printf("⚠️  Dropping unknown budget category %q", k)
		}
	}

	if float64(sum) > budget {
		log.Printf("⚠️  Budget breakdown ₹%d exceeds budget ₹%.0f — using standard split", sum, budget)
		return split
	}
	return out
}

// ─── Fallback ─────────────────────────────────────────────────────────────────

// BudgetSplit is the standard 40/30/20/10 allocation.
func BudgetSplit(budget float64) map[string]int {
	return map[string]int{
		"accommodation":  int(math.Floor(budget * 0.4)),
		"food":           int(math.Floor(budget * 0.3)),
		"activities":     int(math.Floor(budget * 0.2)),
		"transportation": int(math.Floor(budget * 0.1)),
	}
}

// MockItinerary builds a deterministic itinerary dated from the departure date.
func MockItinerary(prefs models.TripPreferences) *models.Itinerary {
	start, err := time.Parse(models.DateLayout, prefs.DepartureDate)
	if err != nil {
		start = time.Now().UTC()
	}

	days := make([]models.ItineraryDay, 0, prefs.Duration)
	for i := 0; i < prefs.Duration; i++ {
		days = append(days, models.ItineraryDay{
			Day:  fmt.Sprintf("Day %d", i+1),
			Date: start.AddDate(0, 0, i).Format(models.DateLayout),
			Activities: []models.Activity{
				{Time: "09:00", Activity: "Morning exploration of " + prefs.Destination, Location: "City Center", Cost: 500, Duration: "2 hours"},
				{Time: "12:00", Activity: "Lunch at local restaurant", Location: "Local Market Area", Cost: 300, Duration: "1 hour"},
				{Time: "14:00", Activity: "Afternoon sightseeing", Location: "Historical Sites", Cost: 400, Duration: "3 hours"},
				{Time: "18:00", Activity: "Evening relaxation", Location: "Hotel", Cost: 200, Duration: "2 hours"},
			},
		})
	}

	return &models.Itinerary{
		Days:            days,
		BudgetBreakdown: BudgetSplit(prefs.Budget),
		Recommendations: models.Recommendations{
			Hotels: []models.HotelSuggestion{
				{Name: "Comfort Inn", PriceRange: "₹2000-3000/night", Rating: 4.2, Location: "City Center"},
			},
			Restaurants: []models.RestaurantSuggestion{
				{Name: "Local Delights", Cuisine: "Local", PriceRange: "₹500-800", Specialty: "Traditional dishes"},
			},
		},
		PackingList: []string{
			"passport",
			fmt.Sprintf("clothes for %d days", prefs.Duration),
			"camera",
			"power bank",
			"travel adapter",
			"first aid kit",
		},
		LocalTips: []string{
			fmt.Sprintf("Best time to visit %s is early morning", prefs.Destination),
			"Try local specialty dishes",
			"Carry cash for local markets",
			"Learn basic local phrases",
		},
		Source: models.ItinerarySourceMock,
	}
}
