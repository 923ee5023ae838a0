package models

// Offer is the slice of a search result the orchestrator relies on. Everything
// else about an offer is opaque to it.
type Offer interface {
	OfferID() string
	UnitPrice() float64
	Label() string
}

type Flight struct {
	ID            string  `json:"id"`
	Airline       string  `json:"airline"`
	AirlineCode   string  `json:"airline_code,omitempty"`
	FlightNumber  string  `json:"flight_number,omitempty"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Duration      string  `json:"duration"`
	Stops         int     `json:"stops"`
	Class         string  `json:"class,omitempty"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency,omitempty"`
}

func (f Flight) OfferID() string    { return f.ID }
func (f Flight) UnitPrice() float64 { return f.Price }
func (f Flight) Label() string      { return f.Airline + " " + f.FlightNumber }

type TrainClass struct {
	Name      string  `json:"name"`
	Fare      float64 `json:"fare"`
	Available bool    `json:"available"`
}

type Train struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Number    string       `json:"number"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Departure string       `json:"departure"`
	Arrival   string       `json:"arrival"`
	Duration  string       `json:"duration"`
	Days      []string     `json:"days"`
	Classes   []TrainClass `json:"classes"`
	Amenities []string     `json:"amenities"`
	Type      string       `json:"type"`
	Distance  string       `json:"distance"`
}

func (t Train) OfferID() string { return t.ID }
func (t Train) Label() string   { return t.Name + " (" + t.Number + ")" }

// Bookable reports whether any class still has seats.
func (t Train) Bookable() bool {
	for _, c := range t.Classes {
		if c.Available {
			return true
		}
	}
	return false
}

// UnitPrice is the cheapest available class fare.
func (t Train) UnitPrice() float64 {
	var best float64
	for _, c := range t.Classes {
		if !c.Available {
			continue
		}
		if best == 0 || c.Fare < best {
			best = c.Fare
		}
	}
	return best
}

type Hotel struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Rating    float64  `json:"rating"`
	Price     float64  `json:"price"` // per night
	Currency  string   `json:"currency,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	RoomType  string   `json:"room_type,omitempty"`
}

func (h Hotel) OfferID() string    { return h.ID }
func (h Hotel) UnitPrice() float64 { return h.Price }
func (h Hotel) Label() string      { return h.Name }

type Restaurant struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Cuisine        string   `json:"cuisine"`
	Rating         float64  `json:"rating"`
	PriceRange     int      `json:"price_range"`
	AverageCost    float64  `json:"average_cost"` // per person
	Address        string   `json:"address"`
	Phone          string   `json:"phone,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
	DietaryOptions []string `json:"dietary_options,omitempty"`
	LunchHours     string   `json:"lunch_hours,omitempty"`
	DinnerHours    string   `json:"dinner_hours,omitempty"`
}

func (r Restaurant) OfferID() string    { return r.ID }
func (r Restaurant) UnitPrice() float64 { return r.AverageCost }
func (r Restaurant) Label() string      { return r.Name }

type Cab struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	Distance   string  `json:"distance"`
	Duration   string  `json:"duration"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency,omitempty"`
	Capacity   int     `json:"capacity"`
}

func (c Cab) OfferID() string    { return c.ID }
func (c Cab) UnitPrice() float64 { return c.Price }
func (c Cab) Label() string      { return c.Name }
