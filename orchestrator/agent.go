package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"goginie/events"
	"goginie/models"
)

// ItineraryGenerator produces the itinerary for a run.
type ItineraryGenerator interface {
	Generate(ctx context.Context, prefs models.TripPreferences) (*models.Itinerary, error)
}

// TravelServices is the search/book surface the agent drives.
type TravelServices interface {
	SearchFlights(ctx context.Context, p models.FlightSearch) models.SearchResponse[models.Flight]
	SearchTrains(ctx context.Context, p models.TrainSearch) models.SearchResponse[models.Train]
	SearchHotels(ctx context.Context, p models.HotelSearch) models.SearchResponse[models.Hotel]
	SearchRestaurants(ctx context.Context, p models.RestaurantSearch) models.SearchResponse[models.Restaurant]

	BookFlight(ctx context.Context, req models.BookingRequest) models.BookingResponse
	BookTrain(ctx context.Context, req models.BookingRequest) models.BookingResponse
	BookHotel(ctx context.Context, req models.BookingRequest) models.BookingResponse
	BookRestaurant(ctx context.Context, req models.BookingRequest) models.BookingResponse
}

type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) {}

// Agent runs trip workflows. Each run moves through
// planning → availability → review → booking → complete and pauses at review
// until Approve or Reject.
type Agent struct {
	planner    ItineraryGenerator
	services   TravelServices
	events     events.Publisher
	onComplete func(Summary)
	now        func() time.Time

	mu   sync.RWMutex
	runs map[string]*run
}

type AgentOption func(*Agent)

func WithPublisher(p events.Publisher) AgentOption {
	return func(a *Agent) { a.events = p }
}

// WithCompletion registers a callback invoked once per completed run.
func WithCompletion(fn func(Summary)) AgentOption {
	return func(a *Agent) { a.onComplete = fn }
}

func New(planner ItineraryGenerator, services TravelServices, opts ...AgentOption) *Agent {
	a := &Agent{
		planner:  planner,
		services: services,
		events:   nopPublisher{},
		now:      func() time.Time { return time.Now().UTC() },
		runs:     make(map[string]*run),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// run serializes operations with op and guards its snapshot with mu, so Get
// never waits on a phase in progress.
type run struct {
	op    sync.Mutex
	mu    sync.RWMutex
	state Run
}

func (r *run) snapshot() Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.clone()
}

func (r *run) update(fn func(*Run)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.state)
}

// ─── Operations ───────────────────────────────────────────────────────────────

// Start validates prefs, registers a run and drives it to review (or error).
func (a *Agent) Start(ctx context.Context, prefs models.TripPreferences) (Run, error) {
	r, err := a.register(prefs)
	if err != nil {
		return Run{}, err
	}
	r.op.Lock()
	defer r.op.Unlock()

	a.plan(ctx, r)
	return r.snapshot(), nil
}

// Submit is Start without waiting: it returns the new run in the planning
// phase and plans in the background.
func (a *Agent) Submit(prefs models.TripPreferences) (Run, error) {
	r, err := a.register(prefs)
	if err != nil {
		return Run{}, err
	}
	r.op.Lock()
	snap := r.snapshot()
	go func() {
		defer r.op.Unlock()
		a.plan(context.Background(), r)
	}()
	return snap, nil
}

// Approve books every available category and completes the run.
func (a *Agent) Approve(ctx context.Context, id string) (Run, error) {
	r, err := a.lookup(id)
	if err != nil {
		return Run{}, err
	}
	r.op.Lock()
	defer r.op.Unlock()

	if err := a.expect(r, PhaseReview); err != nil {
		return r.snapshot(), err
	}
	a.book(ctx, r)
	a.complete(r)
	return r.snapshot(), nil
}

// Reject ends a run in review without booking anything.
func (a *Agent) Reject(id string) (Run, error) {
	r, err := a.lookup(id)
	if err != nil {
		return Run{}, err
	}
	r.op.Lock()
	defer r.op.Unlock()

	if err := a.expect(r, PhaseReview); err != nil {
		return r.snapshot(), err
	}
	a.transition(r, PhaseRejected)
	a.events.Publish(events.Event{Kind: events.PlanRejected, RunID: id, Phase: string(PhaseRejected)})
	log.Printf("🚫 Trip %s rejected at review", id)
	return r.snapshot(), nil
}

// Retry re-plans a failed run with the same preferences.
func (a *Agent) Retry(ctx context.Context, id string) (Run, error) {
	r, err := a.lookup(id)
	if err != nil {
		return Run{}, err
	}
	r.op.Lock()
	defer r.op.Unlock()

	if err := a.expect(r, PhaseError); err != nil {
		return r.snapshot(), err
	}
	a.plan(ctx, r)
	return r.snapshot(), nil
}

// Restart discards everything the run has produced and plans from scratch.
// Bookings already made stay in the booking store.
func (a *Agent) Restart(ctx context.Context, id string) (Run, error) {
	r, err := a.lookup(id)
	if err != nil {
		return Run{}, err
	}
	r.op.Lock()
	defer r.op.Unlock()

	a.plan(ctx, r)
	return r.snapshot(), nil
}

// SelectAlternativeDate re-plans the whole run with the departure moved to
// date. The return date moves by the same amount.
func (a *Agent) SelectAlternativeDate(ctx context.Context, id, date string) (Run, error) {
	r, err := a.lookup(id)
	if err != nil {
		return Run{}, err
	}
	r.op.Lock()
	defer r.op.Unlock()

	if err := a.expect(r, PhaseReview, PhaseRejected, PhaseError); err != nil {
		return r.snapshot(), err
	}
	shifted, err := r.snapshot().Preferences.ShiftDates(date)
	if err != nil {
		return r.snapshot(), err
	}
	if err := shifted.Validate(); err != nil {
		return r.snapshot(), err
	}
	r.update(func(s *Run) { s.Preferences = shifted })
	log.Printf("📅 Trip %s moved to %s", id, shifted.DepartureDate)

	a.plan(ctx, r)
	return r.snapshot(), nil
}

func (a *Agent) Get(id string) (Run, error) {
	r, err := a.lookup(id)
	if err != nil {
		return Run{}, err
	}
	return r.snapshot(), nil
}

// List returns every run, newest first.
func (a *Agent) List() []Run {
	a.mu.RLock()
	out := make([]Run, 0, len(a.runs))
	for _, r := range a.runs {
		out = append(out, r.snapshot())
	}
	a.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ─── Registry & transitions ───────────────────────────────────────────────────

func (a *Agent) register(prefs models.TripPreferences) (*run, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	now := a.now()
	r := &run{state: Run{
		ID:          uuid.NewString(),
		Phase:       PhasePlanning,
		Preferences: prefs.WithDefaults(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}}

	a.mu.Lock()
	a.runs[r.state.ID] = r
	a.mu.Unlock()

	log.Printf("🚀 Trip %s: %s → %s, %d days, %d travellers",
		r.state.ID, r.state.Preferences.StartLocation, r.state.Preferences.Destination,
		r.state.Preferences.Duration, r.state.Preferences.GroupSize)
	return r, nil
}

func (a *Agent) lookup(id string) (*run, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrRunNotFound, id)
	}
	return r, nil
}

func (a *Agent) expect(r *run, allowed ...Phase) error {
	current := r.snapshot().Phase
	for _, p := range allowed {
		if current == p {
			return nil
		}
	}
	return fmt.Errorf("%w: run is in %s", models.ErrInvalidTransition, current)
}

func (a *Agent) transition(r *run, to Phase) {
	var id string
	r.update(func(s *Run) {
		s.Phase = to
		s.UpdatedAt = a.now()
		id = s.ID
	})
	a.events.Publish(events.Event{Kind: events.PhaseChanged, RunID: id, Phase: string(to)})
}

// ─── Planning ─────────────────────────────────────────────────────────────────

// plan resets the run and drives it through planning and availability.
func (a *Agent) plan(ctx context.Context, r *run) {
	r.update(func(s *Run) {
		s.Plan = nil
		s.Availability = nil
		s.Bookings = nil
		s.TotalCost = 0
		s.ConfirmationCode = ""
		s.AlternativeDates = nil
		s.Error = ""
		s.ErrorDetail = ""
	})
	a.transition(r, PhasePlanning)

	prefs := r.snapshot().Preferences
	itinerary, err := a.generate(ctx, prefs)
	if err == nil && itinerary == nil {
		err = fmt.Errorf("itinerary generator returned nothing")
	}
	if err != nil {
		a.fail(r, err)
		return
	}

	plan := buildPlan(prefs, itinerary)
	r.update(func(s *Run) { s.Plan = plan })

	a.transition(r, PhaseAvailability)
	a.checkAvailability(ctx, r, plan)
	a.transition(r, PhaseReview)

	snap := r.snapshot()
	a.events.Publish(events.Event{
		Kind:    events.PlanReady,
		RunID:   snap.ID,
		Phase:   string(PhaseReview),
		Message: fmt.Sprintf("%s · ₹%.0f", snap.ConfirmationCode, snap.TotalCost),
	})
}

func (a *Agent) generate(ctx context.Context, prefs models.TripPreferences) (it *models.Itinerary, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("itinerary generator panicked: %v", p)
		}
	}()
	return a.planner.Generate(ctx, prefs)
}

func (a *Agent) fail(r *run, cause error) {
	r.update(func(s *Run) {
		s.Error = models.ErrFatalPlanning.Error()
		s.ErrorDetail = cause.Error()
	})
	a.transition(r, PhaseError)

	id := r.snapshot().ID
	a.events.Publish(events.Event{Kind: events.PlanningFailed, RunID: id, Phase: string(PhaseError), Message: cause.Error()})
	log.Printf("❌ Trip %s planning failed: %v", id, cause)
}

// buildPlan derives the per-category search requests from the preferences.
func buildPlan(prefs models.TripPreferences, it *models.Itinerary) *TripPlan {
	plan := &TripPlan{
		Preferences: prefs,
		Itinerary:   it,
		Accommodation: AccommodationRequest{
			Location:       prefs.Destination,
			CheckIn:        prefs.DepartureDate,
			CheckOut:       prefs.ReturnDate,
			Nights:         prefs.Duration,
			Guests:         prefs.GroupSize,
			Rooms:          (prefs.GroupSize + 1) / 2,
			MaxNightlyRate: prefs.Budget * hotelBudgetShare,
		},
		Dining: DiningRequest{
			Location: prefs.Destination,
			Cuisine:  prefs.FoodPreference,
			Date:     prefs.DepartureDate,
			Guests:   prefs.GroupSize,
		},
	}

	switch prefs.TransportPreference {
	case models.TransportFlight, models.TransportTrain:
		plan.Transport = &TransportRequest{
			Mode:       prefs.TransportPreference,
			From:       prefs.StartLocation,
			To:         prefs.Destination,
			Date:       prefs.DepartureDate,
			Passengers: prefs.GroupSize,
			Class:      travelClass(prefs.TravelStyle),
		}
	default:
		plan.TransportNote = fmt.Sprintf("%s transport is not booked here; arrange travel from %s separately",
			prefs.TransportPreference, prefs.StartLocation)
	}
	return plan
}

// hotelBudgetShare of the total budget is the nightly hotel ceiling.
const hotelBudgetShare = 0.4

func travelClass(style models.TravelStyle) string {
	if style == models.StyleLuxury {
		return "business"
	}
	return "economy"
}

// ─── Completion ───────────────────────────────────────────────────────────────

func (a *Agent) complete(r *run) {
	a.transition(r, PhaseComplete)
	summary := r.snapshot().Summary()
	log.Printf("🎉 Trip %s complete: %s · booked %v · failed %v · ₹%.0f",
		summary.RunID, summary.ConfirmationCode, summary.Booked, summary.Failed, summary.TotalCost)
	if a.onComplete != nil {
		a.onComplete(summary)
	}
}
