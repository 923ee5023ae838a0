package models

// Itinerary is produced once per planning run and only ever superseded.
type Itinerary struct {
	Days            []ItineraryDay  `json:"itinerary"`
	BudgetBreakdown map[string]int  `json:"budget_breakdown"`
	Recommendations Recommendations `json:"recommendations"`
	PackingList     []string        `json:"packing_list"`
	LocalTips       []string        `json:"local_tips"`
	Source          string          `json:"source"` // "ai" or "mock"
}

type ItineraryDay struct {
	Day        string     `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time     string  `json:"time"`
	Activity string  `json:"activity"`
	Location string  `json:"location"`
	Cost     float64 `json:"cost"`
	Duration string  `json:"duration,omitempty"`
}

type Recommendations struct {
	Hotels      []HotelSuggestion      `json:"hotels"`
	Restaurants []RestaurantSuggestion `json:"restaurants"`
}

type HotelSuggestion struct {
	Name       string  `json:"name"`
	PriceRange string  `json:"price_range"`
	Rating     float64 `json:"rating"`
	Location   string  `json:"location"`
}

type RestaurantSuggestion struct {
	Name       string `json:"name"`
	Cuisine    string `json:"cuisine"`
	PriceRange string `json:"price_range"`
	Specialty  string `json:"specialty"`
}

const (
	ItinerarySourceAI   = "ai"
	ItinerarySourceMock = "mock"
)

// TotalActivityCost sums every activity across all days.
func (it *Itinerary) TotalActivityCost() float64 {
	var total float64
	for _, d := range it.Days {
		for _, a := range d.Activities {
			total += a.Cost
		}
	}
	return total
}
