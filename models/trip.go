package models

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// MaxTripDays bounds Duration for both generated and mocked itineraries.
const MaxTripDays = 30

type TravelStyle string

const (
	StyleBudget      TravelStyle = "budget"
	StyleComfortable TravelStyle = "comfortable"
	StyleLuxury      TravelStyle = "luxury"
	StyleBackpacking TravelStyle = "backpacking"
)

type TransportMode string

const (
	TransportFlight TransportMode = "flight"
	TransportTrain  TransportMode = "train"
	TransportBus    TransportMode = "bus"
	TransportCar    TransportMode = "car"
	TransportMixed  TransportMode = "mixed"
)

// TripPreferences is the user-supplied trip request. A run never mutates it;
// choosing an alternative date produces a shifted copy.
type TripPreferences struct {
	Destination         string        `json:"destination" yaml:"destination"`
	StartLocation       string        `json:"start_location" yaml:"start_location"`
	Duration            int           `json:"duration" yaml:"duration"`
	Budget              float64       `json:"budget" yaml:"budget"`
	GroupSize           int           `json:"group_size" yaml:"group_size"`
	TravelStyle         TravelStyle   `json:"travel_style" yaml:"travel_style"`
	Interests           []string      `json:"interests,omitempty" yaml:"interests,omitempty"`
	FoodPreference      string        `json:"food_preference" yaml:"food_preference"`
	TransportPreference TransportMode `json:"transport_preference" yaml:"transport_preference"`
	DepartureDate       string        `json:"departure_date" yaml:"departure_date"`
	ReturnDate          string        `json:"return_date" yaml:"return_date"`
}

// Validate reports the first missing or out-of-range field.
func (p TripPreferences) Validate() error {
	switch {
	case strings.TrimSpace(p.Destination) == "":
		return &ValidationError{Field: "destination", Message: "destination is required"}
	case strings.TrimSpace(p.StartLocation) == "":
		return &ValidationError{Field: "start_location", Message: "start location is required"}
	case strings.TrimSpace(p.DepartureDate) == "":
		return &ValidationError{Field: "departure_date", Message: "departure date is required"}
	case p.Duration < 1:
		return &ValidationError{Field: "duration", Message: "duration must be at least 1 day"}
	case p.Duration > MaxTripDays:
		return &ValidationError{Field: "duration", Message: fmt.Sprintf("duration cannot exceed %d days", MaxTripDays)}
	case p.Budget < 0:
		return &ValidationError{Field: "budget", Message: "budget cannot be negative"}
	case p.GroupSize < 0:
		return &ValidationError{Field: "group_size", Message: "group size must be at least 1"}
	}

	dep, err := time.Parse(DateLayout, p.DepartureDate)
	if err != nil {
		return &ValidationError{Field: "departure_date", Message: "invalid date format, use YYYY-MM-DD"}
	}
	if p.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, p.ReturnDate)
		if err != nil {
			return &ValidationError{Field: "return_date", Message: "invalid date format, use YYYY-MM-DD"}
		}
		if ret.Before(dep) {
			return &ValidationError{Field: "return_date", Message: "return date must not be before departure date"}
		}
	}

	switch p.TravelStyle {
	case "", StyleBudget, StyleComfortable, StyleLuxury, StyleBackpacking:
	default:
		return &ValidationError{Field: "travel_style", Message: "unknown travel style " + string(p.TravelStyle)}
	}
	switch p.TransportPreference {
	case "", TransportFlight, TransportTrain, TransportBus, TransportCar, TransportMixed:
	default:
		return &ValidationError{Field: "transport_preference", Message: "unknown transport " + string(p.TransportPreference)}
	}
	return nil
}

// ValidateProfile checks the fields that matter without a concrete trip:
// a destination and in-range numbers. Dates are not required.
func (p TripPreferences) ValidateProfile() error {
	switch {
	case strings.TrimSpace(p.Destination) == "":
		return &ValidationError{Field: "destination", Message: "destination is required"}
	case p.Duration < 0 || p.Duration > MaxTripDays:
		return &ValidationError{Field: "duration", Message: fmt.Sprintf("duration must be between 0 and %d days", MaxTripDays)}
	case p.Budget < 0:
		return &ValidationError{Field: "budget", Message: "budget cannot be negative"}
	case p.GroupSize < 0:
		return &ValidationError{Field: "group_size", Message: "group size must be at least 1"}
	}
	return nil
}

// WithDefaults fills optional fields. Call after Validate.
func (p TripPreferences) WithDefaults() TripPreferences {
	p.Destination = strings.TrimSpace(p.Destination)
	p.StartLocation = strings.TrimSpace(p.StartLocation)
	if p.GroupSize < 1 {
		p.GroupSize = 1
	}
	if p.TravelStyle == "" {
		p.TravelStyle = StyleComfortable
	}
	if p.TransportPreference == "" {
		p.TransportPreference = TransportFlight
	}
	if p.ReturnDate == "" {
		if dep, err := time.Parse(DateLayout, p.DepartureDate); err == nil {
			p.ReturnDate = dep.AddDate(0, 0, p.Duration).Format(DateLayout)
		}
	}
	return p
}

// ShiftDates moves departure and return dates so the departure lands on date.
func (p TripPreferences) ShiftDates(date string) (TripPreferences, error) {
	newDep, err := time.Parse(DateLayout, date)
	if err != nil {
		return p, &ValidationError{Field: "date", Message: "invalid date format, use YYYY-MM-DD"}
	}
	oldDep, err := time.Parse(DateLayout, p.DepartureDate)
	if err != nil {
		return p, &ValidationError{Field: "departure_date", Message: "invalid date format, use YYYY-MM-DD"}
	}
	shift := newDep.Sub(oldDep)

	shifted := p
	shifted.Interests = append([]string(nil), p.Interests...)
	shifted.DepartureDate = newDep.Format(DateLayout)
	if ret, err := time.Parse(DateLayout, p.ReturnDate); err == nil {
		shifted.ReturnDate = ret.Add(shift).Format(DateLayout)
	}
	return shifted, nil
}
