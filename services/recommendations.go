package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"goginie/models"
)

const recommendationTemperature = 0.8

// ─── Mood-based ───────────────────────────────────────────────────────────────

// MoodRecommendations suggests activities for how the traveller feels right
// now. Like Generate, it only fails on invalid input.
func (p *Planner) MoodRecommendations(ctx context.Context, req models.MoodRequest) (*models.MoodRecommendations, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Location = strings.TrimSpace(req.Location)
	if req.TimePeriod == "" {
		req.TimePeriod = models.TimeAfternoon
	}

	text, ok := p.generateText(ctx, buildMoodPrompt(req), recommendationTemperature, "mood recommendations")
	if !ok {
		return MockMoodRecommendations(req), nil
	}
	recs, err := parseMoodRecommendations(text, req)
	if err != nil {
		log.Printf("⚠️  %s returned unusable mood recommendations: %v — using mock", p.gen.Name(), err)
		return MockMoodRecommendations(req), nil
	}
	log.Printf("✅ %s mood recommendations for %s (%s, %s)", p.gen.Name(), req.Location, req.Mood, req.TimePeriod)
	return recs, nil
}

func buildMoodPrompt(r models.MoodRequest) string {
	return fmt.Sprintf(`You are a mood-aware travel guide who understands how different activities affect a person's emotional state.

Suggest activities for someone in a %s mood in %s during the %s.

Return ONLY valid JSON (no markdown) with this structure:
{
  "activities": [
    {
      "name": "Activity name",
      "description": "Why this activity matches the mood",
      "duration": "2 hours",
      "cost": 500,
      "moodMatch": 95,
      "location": "Specific location",
      "tips": "Tips for this activity"
    }
  ],
  "moodEnhancement": "How these activities can improve the mood",
  "alternativeOptions": ["Alternative activity if the first doesn't work"]
}

Costs are numbers in INR. moodMatch is 0-100.`, r.Mood, r.Location, r.TimePeriod)
}

type rawMoodRecommendations struct {
	Activities []struct {
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Duration    string    `json:"duration"`
		Cost        flexFloat `json:"cost"`
		MoodMatch   flexFloat `json:"moodMatch"`
		Location    string    `json:"location"`
		Tips        string    `json:"tips"`
	} `json:"activities"`
	MoodEnhancement    string   `json:"moodEnhancement"`
	AlternativeOptions []string `json:"alternativeOptions"`
}

func parseMoodRecommendations(text string, req models.MoodRequest) (*models.MoodRecommendations, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var r rawMoodRecommendations
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	if len(r.Activities) == 0 {
		return nil, fmt.Errorf("%w: no activities", models.ErrMalformedResponse)
	}

	recs := &models.MoodRecommendations{
		Mood:               req.Mood,
		Location:           req.Location,
		TimePeriod:         req.TimePeriod,
		MoodEnhancement:    r.MoodEnhancement,
		AlternativeOptions: r.AlternativeOptions,
		Source:             models.ItinerarySourceAI,
	}
	for i, a := range r.Activities {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("%w: activity %d has no name", models.ErrMalformedResponse, i+1)
		}
		if a.Cost < 0 {
			return nil, fmt.Errorf("%w: negative cost on %s", models.ErrMalformedResponse, a.Name)
		}
		location := a.Location
		if location == "" {
			location = req.Location
		}
		recs.Activities = append(recs.Activities, models.MoodActivity{
			Name:        a.Name,
			Description: a.Description,
			Location:    location,
			Duration:    a.Duration,
			Cost:        float64(a.Cost),
			MoodMatch:   score(a.MoodMatch),
			Tips:        a.Tips,
		})
	}
	return recs, nil
}

// score clamps a model-supplied match score to 0..100.
func score(f flexFloat) int {
	switch {
	case f < 0:
		return 0
	case f > 100:
		return 100
	}
	return int(f)
}

type moodIdea struct {
	name, description, category, duration, tip string
	priceLevel                                 int
}

var moodIdeas = map[models.Mood][]moodIdea{
	models.MoodAdventurous: {
		{"Mountain Hiking Trail", "An exhilarating hike with views of the valley below, for anyone looking for a challenge.", "Outdoor Activity", "3-4 hours",
			"The west trail is less crowded but harder. Start early to catch the morning mist over the valley.", 1},
		{"Rock Climbing Center", "Climbing walls from beginner to expert levels to test strength and agility.", "Adventure Sports", "1-2 hours",
			"Weekday evenings are usually less crowded.", 2},
		{"Kayaking Adventure", "Paddle through scenic waterways to coves you cannot reach on foot.", "Water Activity", "2-3 hours",
			"The sunset tour books up quickly. Morning tours spot more wildlife.", 2},
	},
	models.MoodRelaxed: {
		{"Tranquil Garden Park", "A peaceful oasis in the city with flower beds and quiet walking paths.", "Parks & Gardens", "1-2 hours",
			"Look for the quiet meditation spot near the east pond.", 1},
		{"Seaside Reading Café", "Good books and better coffee in a cozy café with sea views.", "Café", "1-3 hours",
			"Ask for the off-menu house blend.", 2},
	},
	models.MoodRomantic: {
		{"Sunset Vineyard Tour", "Stroll through vineyards and taste wine as the sun sets over the hills.", "Tour & Tasting", "3 hours",
			"Reserve the private balcony for the best view.", 3},
	},
	models.MoodHungry: {
		{"Local Food Market", "Sample local cuisine and street food from the city's favourite vendors.", "Food Market", "1-2 hours",
			"The best stalls sell out by 2 PM.", 2},
	},
	models.MoodTired: {
		{"Relaxation Spa Retreat", "Massages, facials and a hydrothermal pool to recharge.", "Spa & Wellness", "2-4 hours",
			"Ask for treatments made with regional ingredients.", 3},
	},
	models.MoodEnergetic: {
		{"Beachside Volleyball", "Join locals for a game of beach volleyball on a popular stretch of sand.", "Beach Activity", "1-2 hours",
			"Sunday mornings have informal tournaments visitors can join. Bring water.", 1},
	},
}

// MockMoodRecommendations returns the fixed ideas for a mood.
func MockMoodRecommendations(req models.MoodRequest) *models.MoodRecommendations {
	recs := &models.MoodRecommendations{
		Mood:            req.Mood,
		Location:        req.Location,
		TimePeriod:      req.TimePeriod,
		MoodEnhancement: fmt.Sprintf("Activities picked to suit a %s mood in the %s.", req.Mood, req.TimePeriod),
		Source:          models.ItinerarySourceMock,
	}
	for i, idea := range moodIdeas[req.Mood] {
		recs.Activities = append(recs.Activities, models.MoodActivity{
			Name:        idea.name,
			Description: idea.description,
			Category:    idea.category,
			Location:    req.Location,
			Duration:    idea.duration,
			Cost:        float64(idea.priceLevel * 500),
			MoodMatch:   95 - 5*i,
			Tips:        idea.tip,
		})
		if i > 0 {
			recs.AlternativeOptions = append(recs.AlternativeOptions, idea.name)
		}
	}
	return recs
}

// ─── Personalized ─────────────────────────────────────────────────────────────

// PersonalizedRecommendations scores hotels, restaurants and activities at
// the destination against the traveller's preferences. Only the destination
// is required.
func (p *Planner) PersonalizedRecommendations(ctx context.Context, prefs models.TripPreferences) (*models.PersonalizedRecommendations, error) {
	if err := prefs.ValidateProfile(); err != nil {
		return nil, err
	}
	prefs.Destination = strings.TrimSpace(prefs.Destination)
	if prefs.GroupSize < 1 {
		prefs.GroupSize = 1
	}
	if prefs.TravelStyle == "" {
		prefs.TravelStyle = models.StyleComfortable
	}

	text, ok := p.generateText(ctx, buildPersonalizedPrompt(prefs), recommendationTemperature, "recommendations")
	if !ok {
		return MockPersonalizedRecommendations(prefs), nil
	}
	recs, err := parsePersonalizedRecommendations(text, prefs.Destination)
	if err != nil {
		log.Printf("⚠️  %s returned unusable recommendations: %v — using mock", p.gen.Name(), err)
		return MockPersonalizedRecommendations(prefs), nil
	}
	log.Printf("✅ %s recommendations for %s", p.gen.Name(), prefs.Destination)
	return recs, nil
}

func buildPersonalizedPrompt(p models.TripPreferences) string {
	interests := "general sightseeing"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	food := p.FoodPreference
	if food == "" {
		food = "no preference"
	}
	duration := "flexible"
	if p.Duration > 0 {
		duration = fmt.Sprintf("%d days", p.Duration)
	}

	return fmt.Sprintf(`You are a local travel expert who knows the hidden gems, authentic experiences and value-for-money options in %s.

Generate personalized recommendations for %s based on these preferences:
- Interests: %s
- Budget: ₹%.0f
- Travel Style: %s
- Food Preference: %s
- Group Size: %d people
- Duration: %s

Return ONLY valid JSON (no markdown) with this structure:
{
  "hotels": [{"name": "Hotel name", "description": "Why it matches", "priceRange": "₹3000-5000/night", "rating": 4.5, "amenities": ["wifi", "breakfast"], "matchScore": 95}],
  "restaurants": [{"name": "Restaurant name", "cuisine": "Cuisine type", "description": "Why it matches", "priceRange": "₹500-1000", "dietaryOptions": ["vegetarian"], "matchScore": 90}],
  "activities": [{"name": "Activity name", "description": "Why it matches", "duration": "3 hours", "cost": 1500, "category": "culture", "matchScore": 88}],
  "localInsights": ["Local tip or insight"],
  "budgetOptimization": {"suggestions": ["suggestion"], "potentialSavings": 2000}
}

Costs are numbers in INR. matchScore is 0-100.`,
		p.Destination, p.Destination,
		interests, p.Budget, p.TravelStyle, food, p.GroupSize, duration)
}

type rawPersonalized struct {
	Hotels []struct {
		Name        string    `json:"name"`
		Description string    `json:"description"`
		PriceRange  string    `json:"priceRange"`
		Rating      flexFloat `json:"rating"`
		Amenities   []string  `json:"amenities"`
		MatchScore  flexFloat `json:"matchScore"`
	} `json:"hotels"`
	Restaurants []struct {
		Name           string    `json:"name"`
		Cuisine        string    `json:"cuisine"`
		Description    string    `json:"description"`
		PriceRange     string    `json:"priceRange"`
		DietaryOptions []string  `json:"dietaryOptions"`
		MatchScore     flexFloat `json:"matchScore"`
	} `json:"restaurants"`
	Activities []struct {
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Duration    string    `json:"duration"`
		Cost        flexFloat `json:"cost"`
		Category    string    `json:"category"`
		MatchScore  flexFloat `json:"matchScore"`
	} `json:"activities"`
	LocalInsights      []string `json:"localInsights"`
	BudgetOptimization struct {
		Suggestions      []string  `json:"suggestions"`
		PotentialSavings flexFloat `json:"potentialSavings"`
	} `json:"budgetOptimization"`
}

func parsePersonalizedRecommendations(text, destination string) (*models.PersonalizedRecommendations, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var r rawPersonalized
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	if len(r.Hotels)+len(r.Restaurants)+len(r.Activities) == 0 {
		return nil, fmt.Errorf("%w: no recommendations", models.ErrMalformedResponse)
	}

	recs := &models.PersonalizedRecommendations{
		Destination:   destination,
		LocalInsights: r.LocalInsights,
		BudgetOptimization: models.BudgetOptimization{
			Suggestions:      r.BudgetOptimization.Suggestions,
			PotentialSavings: float64(r.BudgetOptimization.PotentialSavings),
		},
		Source: models.ItinerarySourceAI,
	}
	for _, h := range r.Hotels {
		recs.Hotels = append(recs.Hotels, models.HotelPick{
			Name:        h.Name,
			Description: h.Description,
			PriceRange:  h.PriceRange,
			Rating:      float64(h.Rating),
			Amenities:   h.Amenities,
			MatchScore:  score(h.MatchScore),
		})
	}
	for _, rs := range r.Restaurants {
		recs.Restaurants = append(recs.Restaurants, models.RestaurantPick{
			Name:           rs.Name,
			Cuisine:        rs.Cuisine,
			Description:    rs.Description,
			PriceRange:     rs.PriceRange,
			DietaryOptions: rs.DietaryOptions,
			MatchScore:     score(rs.MatchScore),
		})
	}
	for _, a := range r.Activities {
		if a.Cost < 0 {
			return nil, fmt.Errorf("%w: negative cost on %s", models.ErrMalformedResponse, a.Name)
		}
		recs.Activities = append(recs.Activities, models.ActivityPick{
			Name:        a.Name,
			Description: a.Description,
			Duration:    a.Duration,
			Cost:        float64(a.Cost),
			Category:    a.Category,
			MatchScore:  score(a.MatchScore),
		})
	}
	return recs, nil
}

// MockPersonalizedRecommendations is the fixed fallback set, with the
// traveller's food preference listed first among dietary options.
func MockPersonalizedRecommendations(prefs models.TripPreferences) *models.PersonalizedRecommendations {
	dietary := []string{"vegetarian", "gluten-free"}
	if f := strings.ToLower(strings.TrimSpace(prefs.FoodPreference)); f != "" && f != dietary[0] {
		dietary = append([]string{f}, dietary...)
	}

	return &models.PersonalizedRecommendations{
		Destination: prefs.Destination,
		Hotels: []models.HotelPick{{
			Name:        "Comfort Inn",
			Description: "Comfortable rooms close to the main sights of " + prefs.Destination,
			PriceRange:  "₹2000-3000/night",
			Rating:      4.5,
			Amenities:   []string{"wifi", "breakfast", "gym"},
			MatchScore:  90,
		}},
		Restaurants: []models.RestaurantPick{{
			Name:           "Local Delights",
			Cuisine:        "Local",
			Description:    "Authentic local dining rated highly by residents",
			PriceRange:     "₹500-800",
			DietaryOptions: dietary,
			MatchScore:     85,
		}},
		Activities: []models.ActivityPick{{
			Name:        "Cultural Walking Tour",
			Description: "Explore local culture and history with an expert guide",
			Duration:    "3 hours",
			Cost:        750,
			Category:    "culture",
			MatchScore:  88,
		}},
		LocalInsights: []string{
			"Visit early morning for fewer crowds and better photos",
			"Local markets are best on weekends",
			"Use public transport for an authentic local experience",
		},
		BudgetOptimization: models.BudgetOptimization{
			Suggestions: []string{
				"Use public transport instead of taxis",
				"Eat at local markets for authentic and affordable meals",
				"Look for free walking tours",
				"Visit museums on free admission days",
			},
			PotentialSavings: 1500,
		},
		Source: models.ItinerarySourceMock,
	}
}
