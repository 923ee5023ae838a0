package orchestrator

import "goginie/services"

// SummaryPDF renders a run's plan and per-category outcome.
func SummaryPDF(run Run) ([]byte, error) {
	return services.GenerateTripSummaryPDF(summaryData(run))
}

func summaryData(run Run) services.TripSummaryData {
	data := services.TripSummaryData{
		ConfirmationCode: run.ConfirmationCode,
		Preferences:      run.Preferences,
		Phase:            string(run.Phase),
		TotalCost:        run.TotalCost,
	}
	if run.Plan != nil {
		data.Itinerary = run.Plan.Itinerary
		if run.Plan.TransportNote != "" {
			data.Notes = append(data.Notes, run.Plan.TransportNote)
		}
	}

	for _, av := range run.Availability {
		line := services.TripSummaryLine{
			Category:  string(av.Category),
			Available: av.Available,
			Subtotal:  av.Subtotal,
			Status:    "awaiting approval",
		}
		if av.Selected != nil {
			line.Label = av.Selected.Label
		}
		if b, ok := run.BookingFor(av.Category); ok {
			line.Status = string(b.Status)
			if b.Record != nil {
				line.Status += " " + b.Record.ConfirmationCode
			}
		} else if run.Phase == PhaseRejected {
			line.Status = "not booked"
		}
		data.Lines = append(data.Lines, line)
	}
	return data
}
