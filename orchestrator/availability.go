package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"goginie/models"
)

// maxAlternatives is how many runner-up offers are kept per category.
const maxAlternatives = 2

// checkAvailability searches every category of the plan concurrently and
// records the outcome, total cost and plan code on the run.
func (a *Agent) checkAvailability(ctx context.Context, r *run, plan *TripPlan) {
	type search struct {
		category   Category
		multiplier int
		fn         func() Availability
	}

	prefs := plan.Preferences
	var searches []search
	if t := plan.Transport; t != nil {
		searches = append(searches, search{CategoryTransport, prefs.GroupSize, func() Availability {
			return a.searchTransport(ctx, *t)
		}})
	}
	searches = append(searches,
		search{CategoryHotel, prefs.Duration, func() Availability {
			h := plan.Accommodation
			return availabilityOf(a.services.SearchHotels(ctx, models.HotelSearch{
				Location:       h.Location,
				CheckIn:        h.CheckIn,
				CheckOut:       h.CheckOut,
				Guests:         h.Guests,
				Rooms:          h.Rooms,
				MaxNightlyRate: h.MaxNightlyRate,
			}))
		}},
		search{CategoryRestaurant, prefs.GroupSize, func() Availability {
			d := plan.Dining
			return availabilityOf(a.services.SearchRestaurants(ctx, models.RestaurantSearch{
				Location: d.Location,
				Cuisine:  d.Cuisine,
				Date:     d.Date,
				Guests:   d.Guests,
			}))
		}},
	)

	results := make([]Availability, len(searches))
	var wg sync.WaitGroup
	for i, s := range searches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					log.Printf("❌ %s search panicked: %v", s.category, p)
					results[i] = Availability{Error: fmt.Sprintf("search panicked: %v", p)}
				}
				results[i].Category = s.category
				results[i].Multiplier = s.multiplier
			}()
			results[i] = s.fn()
		}()
	}
	wg.Wait()

	var total float64
	anyUnavailable := false
	for i := range results {
		res := &results[i]
		if res.Available {
			res.Subtotal = res.Selected.UnitPrice * float64(res.Multiplier)
			total += res.Subtotal
			log.Printf("✅ %s: %s at ₹%.0f × %d", res.Category, res.Selected.Label, res.Selected.UnitPrice, res.Multiplier)
		} else {
			anyUnavailable = true
			log.Printf("⚠️  %s unavailable: %s", res.Category, res.Error)
		}
	}

	var alternatives []string
	if anyUnavailable {
		alternatives = AlternativeDates(prefs.DepartureDate)
	}

	r.update(func(s *Run) {
		s.Availability = results
		s.TotalCost = total
		s.ConfirmationCode = models.PlanCode()
		s.AlternativeDates = alternatives
	})
}

func (a *Agent) searchTransport(ctx context.Context, t TransportRequest) Availability {
	switch t.Mode {
	case models.TransportTrain:
		return availabilityOf(a.services.SearchTrains(ctx, models.TrainSearch{
			From:          t.From,
			To:            t.To,
			DepartureDate: t.Date,
			Passengers:    t.Passengers,
		}))
	default:
		return availabilityOf(a.services.SearchFlights(ctx, models.FlightSearch{
			From:          t.From,
			To:            t.To,
			DepartureDate: t.Date,
			Passengers:    t.Passengers,
			Class:         t.Class,
		}))
	}
}

// availabilityOf selects the first bookable result and keeps the next few as
// alternatives. An empty or failed search, or one with nothing left to book,
// is unavailable.
func availabilityOf[T models.Offer](resp models.SearchResponse[T]) Availability {
	av := Availability{Source: resp.Source}
	if !resp.Success {
		av.Error = resp.Error
		return av
	}

	offers := make([]T, 0, len(resp.Data))
	for _, o := range resp.Data {
		if b, ok := any(o).(interface{ Bookable() bool }); ok && !b.Bookable() {
			continue
		}
		offers = append(offers, o)
	}
	switch {
	case len(resp.Data) == 0:
		av.Error = "no results"
		return av
	case len(offers) == 0:
		av.Error = "sold out"
		return av
	}

	selected := choiceOf(offers[0])
	av.Available = true
	av.Selected = &selected
	for _, o := range offers[1:] {
		if len(av.Alternatives) == maxAlternatives {
			break
		}
		av.Alternatives = append(av.Alternatives, choiceOf(o))
	}
	return av
}

// AlternativeDates lists departures up to three days either side of date,
// earliest first. An unparseable date yields none.
func AlternativeDates(date string) []string {
	base, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil
	}
	out := make([]string, 0, 6)
	for offset := -3; offset <= 3; offset++ {
		if offset == 0 {
			continue
		}
		out = append(out, base.AddDate(0, 0, offset).Format(models.DateLayout))
	}
	return out
}
