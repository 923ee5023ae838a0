package models

import (
	"strings"
)

type Mood string

const (
	MoodAdventurous Mood = "adventurous"
	MoodRelaxed     Mood = "relaxed"
	MoodRomantic    Mood = "romantic"
	MoodHungry      Mood = "hungry"
	MoodTired       Mood = "tired"
	MoodEnergetic   Mood = "energetic"
)

var Moods = []Mood{MoodAdventurous, MoodRelaxed, MoodRomantic, MoodHungry, MoodTired, MoodEnergetic}

func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

type TimePeriod string

const (
	TimeMorning   TimePeriod = "morning"
	TimeAfternoon TimePeriod = "afternoon"
	TimeEvening   TimePeriod = "evening"
	TimeNight     TimePeriod = "night"
)

func (t TimePeriod) Valid() bool {
	switch t {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeNight:
		return true
	}
	return false
}

// ─── Mood-based ───────────────────────────────────────────────────────────────

type MoodRequest struct {
	Mood       Mood       `json:"mood" yaml:"mood"`
	Location   string     `json:"location" yaml:"location"`
	TimePeriod TimePeriod `json:"time_period" yaml:"time_period"`
}

func (r MoodRequest) Validate() error {
	switch {
	case !r.Mood.Valid():
		return &ValidationError{Field: "mood", Message: "unknown mood " + string(r.Mood)}
	case strings.TrimSpace(r.Location) == "":
		return &ValidationError{Field: "location", Message: "location is required"}
	case r.TimePeriod != "" && !r.TimePeriod.Valid():
		return &ValidationError{Field: "time_period", Message: "unknown time period " + string(r.TimePeriod)}
	}
	return nil
}

type MoodActivity struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Location    string  `json:"location"`
	Duration    string  `json:"duration"`
	Cost        float64 `json:"cost"`
	MoodMatch   int     `json:"mood_match"`
	Tips        string  `json:"tips,omitempty"`
}

type MoodRecommendations struct {
	Mood               Mood           `json:"mood"`
	Location           string         `json:"location"`
	TimePeriod         TimePeriod     `json:"time_period"`
	Activities         []MoodActivity `json:"activities"`
	MoodEnhancement    string         `json:"mood_enhancement,omitempty"`
	AlternativeOptions []string       `json:"alternative_options,omitempty"`
	Source             string         `json:"source"`
}

// ─── Personalized ─────────────────────────────────────────────────────────────

type HotelPick struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceRange  string   `json:"price_range"`
	Rating      float64  `json:"rating"`
	Amenities   []string `json:"amenities,omitempty"`
	MatchScore  int      `json:"match_score"`
}

type RestaurantPick struct {
	Name           string   `json:"name"`
	Cuisine        string   `json:"cuisine"`
	Description    string   `json:"description"`
	PriceRange     string   `json:"price_range"`
	DietaryOptions []string `json:"dietary_options,omitempty"`
	MatchScore     int      `json:"match_score"`
}

type ActivityPick struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Cost        float64 `json:"cost"`
	Category    string  `json:"category"`
	MatchScore  int     `json:"match_score"`
}

type BudgetOptimization struct {
	Suggestions      []string `json:"suggestions"`
	PotentialSavings float64  `json:"potential_savings"`
}

// PersonalizedRecommendations are destination picks scored against a
// traveller's preferences.
type PersonalizedRecommendations struct {
	Destination        string             `json:"destination"`
	Hotels             []HotelPick        `json:"hotels"`
	Restaurants        []RestaurantPick   `json:"restaurants"`
	Activities         []ActivityPick     `json:"activities"`
	LocalInsights      []string           `json:"local_insights"`
	BudgetOptimization BudgetOptimization `json:"budget_optimization"`
	Source             string             `json:"source"`
}
