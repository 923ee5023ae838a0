package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"goginie/events"
	"goginie/models"
)

// book attempts every available category concurrently. A failure in one
// category never affects the others; unavailable categories are skipped.
func (a *Agent) book(ctx context.Context, r *run) {
	a.transition(r, PhaseBooking)

	snap := r.snapshot()
	var targets []Availability
	for _, av := range snap.Availability {
		if av.Available {
			targets = append(targets, av)
		}
	}

	bookings := make([]CategoryBooking, len(targets))
	for i, av := range targets {
		bookings[i] = CategoryBooking{Category: av.Category, Status: BookingPending}
	}
	r.update(func(s *Run) { s.Bookings = append([]CategoryBooking(nil), bookings...) })

	var wg sync.WaitGroup
	for i, av := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.setBooking(r, i, CategoryBooking{Category: av.Category, Status: BookingInFlight})

			result := a.bookCategory(ctx, snap, av)
			a.setBooking(r, i, result)

			if result.Status == BookingBooked {
				a.events.Publish(events.Event{
					Kind:     events.CategoryBooked,
					RunID:    snap.ID,
					Phase:    string(PhaseBooking),
					Category: string(av.Category),
					Message:  result.Record.ConfirmationCode,
				})
				log.Printf("✅ Trip %s %s booked: %s", snap.ID, av.Category, result.Record.ConfirmationCode)
				return
			}
			a.events.Publish(events.Event{
				Kind:     events.CategoryFailed,
				RunID:    snap.ID,
				Phase:    string(PhaseBooking),
				Category: string(av.Category),
				Message:  result.Error,
			})
			log.Printf("❌ Trip %s %s booking failed: %s", snap.ID, av.Category, result.Error)
		}()
	}
	wg.Wait()
}

func (a *Agent) setBooking(r *run, i int, b CategoryBooking) {
	r.update(func(s *Run) { s.Bookings[i] = b })
}

func (a *Agent) bookCategory(ctx context.Context, snap Run, av Availability) (out CategoryBooking) {
	out = CategoryBooking{Category: av.Category, Status: BookingFailed}
	defer func() {
		if p := recover(); p != nil {
			out = CategoryBooking{Category: av.Category, Status: BookingFailed, Error: fmt.Sprintf("booking panicked: %v", p)}
		}
	}()

	req := bookingRequest(snap, av)
	var resp models.BookingResponse
	switch av.Category {
	case CategoryTransport:
		if snap.Plan != nil && snap.Plan.Transport != nil && snap.Plan.Transport.Mode == models.TransportTrain {
			resp = a.services.BookTrain(ctx, req)
		} else {
			resp = a.services.BookFlight(ctx, req)
		}
	case CategoryHotel:
		resp = a.services.BookHotel(ctx, req)
	case CategoryRestaurant:
		resp = a.services.BookRestaurant(ctx, req)
	default:
		out.Error = "unknown category " + string(av.Category)
		return out
	}

	if !resp.Success || resp.Data == nil {
		out.Error = resp.Error
		if out.Error == "" {
			out.Error = models.ErrAdapterUnavailable.Error()
		}
		return out
	}
	return CategoryBooking{Category: av.Category, Status: BookingBooked, Record: resp.Data}
}

func bookingRequest(snap Run, av Availability) models.BookingRequest {
	prefs := snap.Preferences
	req := models.BookingRequest{
		ItemID:   av.Selected.ID,
		Title:    av.Selected.Label,
		Amount:   av.Subtotal,
		Guests:   prefs.GroupSize,
		Date:     prefs.DepartureDate,
		TripCode: snap.ConfirmationCode,
		Details: map[string]string{
			"destination": prefs.Destination,
			"unit_price":  strconv.FormatFloat(av.Selected.UnitPrice, 'f', 0, 64),
			"quantity":    strconv.Itoa(av.Multiplier),
		},
	}
	if av.Category == CategoryHotel {
		req.Details["check_out"] = prefs.ReturnDate
		req.Details["nights"] = strconv.Itoa(prefs.Duration)
	}
	return req
}
