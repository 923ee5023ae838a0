package orchestrator

import (
	"time"

	"goginie/models"
)

type Phase string

const (
	PhasePlanning     Phase = "planning"
	PhaseAvailability Phase = "availability"
	PhaseReview       Phase = "review"
	PhaseBooking      Phase = "booking"
	PhaseComplete     Phase = "complete"
	PhaseError        Phase = "error"
	PhaseRejected     Phase = "rejected"
)

type Category string

const (
	CategoryTransport  Category = "transport"
	CategoryHotel      Category = "hotel"
	CategoryRestaurant Category = "restaurant"
)

// BookingStatus tracks one category through the booking phase.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingInFlight BookingStatus = "booking"
	BookingBooked   BookingStatus = "booked"
	BookingFailed   BookingStatus = "failed"
)

// ─── Plan ─────────────────────────────────────────────────────────────────────

type TransportRequest struct {
	Mode       models.TransportMode `json:"mode"`
	From       string               `json:"from"`
	To         string               `json:"to"`
	Date       string               `json:"date"`
	Passengers int                  `json:"passengers"`
	Class      string               `json:"class,omitempty"`
}

type AccommodationRequest struct {
	Location       string  `json:"location"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	Nights         int     `json:"nights"`
	Guests         int     `json:"guests"`
	Rooms          int     `json:"rooms"`
	MaxNightlyRate float64 `json:"max_nightly_rate"`
}

type DiningRequest struct {
	Location string `json:"location"`
	Cuisine  string `json:"cuisine,omitempty"`
	Date     string `json:"date"`
	Guests   int    `json:"guests"`
}

// TripPlan is the itinerary plus the search requests derived from the
// preferences. Transport is nil for modes with no bookable transport.
type TripPlan struct {
	Preferences   models.TripPreferences `json:"preferences"`
	Itinerary     *models.Itinerary      `json:"itinerary"`
	Transport     *TransportRequest      `json:"transport,omitempty"`
	Accommodation AccommodationRequest   `json:"accommodation"`
	Dining        DiningRequest          `json:"dining"`
	// TransportNote is set when the transport mode has no bookable category.
	TransportNote string                 `json:"transport_note,omitempty"`
}

// ─── Availability ─────────────────────────────────────────────────────────────

// Choice is one search result as the orchestrator sees it.
type Choice struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	UnitPrice float64      `json:"unit_price"`
	Offer     models.Offer `json:"offer"`
}

func choiceOf(o models.Offer) Choice {
	return Choice{ID: o.OfferID(), Label: o.Label(), UnitPrice: o.UnitPrice(), Offer: o}
}

// Availability is the search outcome for one category. Available is true
// exactly when Selected is set.
type Availability struct {
	Category     Category `json:"category"`
	Available    bool     `json:"available"`
	Selected     *Choice  `json:"selected,omitempty"`
	Alternatives []Choice `json:"alternatives,omitempty"`
	Multiplier   int      `json:"multiplier"`
	Subtotal     float64  `json:"subtotal"`
	Source       string   `json:"source,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type CategoryBooking struct {
	Category Category              `json:"category"`
	Status   BookingStatus         `json:"status"`
	Record   *models.BookingRecord `json:"record,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// ─── Run ──────────────────────────────────────────────────────────────────────

// Run is a point-in-time snapshot of one trip workflow.
type Run struct {
	ID               string                 `json:"id"`
	Phase            Phase                  `json:"phase"`
	Preferences      models.TripPreferences `json:"preferences"`
	Plan             *TripPlan              `json:"plan,omitempty"`
	Availability     []Availability         `json:"availability,omitempty"`
	Bookings         []CategoryBooking      `json:"bookings,omitempty"`
	TotalCost        float64                `json:"total_cost"`
	ConfirmationCode string                 `json:"confirmation_code,omitempty"`
	AlternativeDates []string               `json:"alternative_dates,omitempty"`
	Error            string                 `json:"error,omitempty"`
	ErrorDetail      string                 `json:"error_detail,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// AvailabilityFor returns the category's availability, if it was searched.
func (r Run) AvailabilityFor(c Category) (Availability, bool) {
	for _, a := range r.Availability {
		if a.Category == c {
			return a, true
		}
	}
	return Availability{}, false
}

// BookingFor returns the category's booking, if it was attempted.
func (r Run) BookingFor(c Category) (CategoryBooking, bool) {
	for _, b := range r.Bookings {
		if b.Category == c {
			return b, true
		}
	}
	return CategoryBooking{}, false
}

// Summary is what a completed run reports to its caller.
type Summary struct {
	RunID            string            `json:"run_id"`
	ConfirmationCode string            `json:"confirmation_code"`
	Plan             *TripPlan         `json:"plan"`
	Bookings         []CategoryBooking `json:"bookings"`
	TotalCost        float64           `json:"total_cost"`
	Booked           []Category        `json:"booked"`
	Failed           []Category        `json:"failed"`
}

func (r Run) Summary() Summary {
	s := Summary{
		RunID:            r.ID,
		ConfirmationCode: r.ConfirmationCode,
		Plan:             r.Plan,
		Bookings:         r.Bookings,
		TotalCost:        r.TotalCost,
	}
	for _, b := range r.Bookings {
		switch b.Status {
		case BookingBooked:
			s.Booked = append(s.Booked, b.Category)
		case BookingFailed:
			s.Failed = append(s.Failed, b.Category)
		}
	}
	return s
}

// clone copies the slices a caller could otherwise alias.
func (r Run) clone() Run {
	r.Availability = append([]Availability(nil), r.Availability...)
	r.Bookings = append([]CategoryBooking(nil), r.Bookings...)
	r.AlternativeDates = append([]string(nil), r.AlternativeDates...)
	return r
}
