package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"goginie/models"
	"goginie/orchestrator"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// writeOutput renders v as json or yaml, or calls table for the default
// tabular view.
func writeOutput(w io.Writer, format string, v any, table func(tw *tabwriter.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		table(tw)
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
	}
}

func bookingsTable(list []models.BookingRecord) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tCODE\tTITLE\tAMOUNT\tBOOKED")
		for _, b := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s %.0f\t%s\n",
				b.ID, b.Type, b.Status, b.ConfirmationCode, b.Title, b.Currency, b.Amount,
				b.Timestamp.Local().Format("2006-01-02 15:04"))
		}
	}
}

func statsTable(st models.BookingStats) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "TOTAL\tCONFIRMED\tPENDING\tCANCELLED\tSPENT")
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\tINR %.0f\n", st.Total, st.Confirmed, st.Pending, st.Cancelled, st.TotalSpent)
	}
}

// runTable shows one row per category with its selection and, once booking
// has happened, the outcome.
func runTable(run orchestrator.Run) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Trip %s\t%s\n", run.ConfirmationCode, run.Phase)
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "CATEGORY\tSELECTION\tUNIT\tQTY\tSUBTOTAL\tSTATUS")
		for _, av := range run.Availability {
			if !av.Available {
				fmt.Fprintf(tw, "%s\t-\t-\t-\t-\tunavailable\n", av.Category)
				continue
			}
			status := "selected"
			if b, ok := run.BookingFor(av.Category); ok {
				status = string(b.Status)
				if b.Record != nil {
					status += " " + b.Record.ConfirmationCode
				} else if b.Error != "" {
					status += ": " + b.Error
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%.0f\t%d\t%.0f\t%s\n",
				av.Category, av.Selected.Label, av.Selected.UnitPrice, av.Multiplier, av.Subtotal, status)
		}
		fmt.Fprintf(tw, "TOTAL\t\t\t\t%.0f\t\n", run.TotalCost)
		if run.Plan != nil && run.Plan.TransportNote != "" {
			fmt.Fprintln(tw)
			fmt.Fprintf(tw, "Note:\t%s\n", run.Plan.TransportNote)
		}
		if len(run.AlternativeDates) > 0 {
			fmt.Fprintln(tw)
			fmt.Fprintf(tw, "Alternative dates:\t%v\n", run.AlternativeDates)
		}
	}
}

func moodTable(recs *models.MoodRecommendations) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Feeling %s in %s (%s)\t%s\n", recs.Mood, recs.Location, recs.TimePeriod, recs.Source)
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "ACTIVITY\tWHERE\tDURATION\tCOST\tMATCH")
		for _, a := range recs.Activities {
			fmt.Fprintf(tw, "%s\t%s\t%s\tINR %.0f\t%d%%\n", a.Name, a.Location, a.Duration, a.Cost, a.MoodMatch)
		}
		if recs.MoodEnhancement != "" {
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, recs.MoodEnhancement)
		}
	}
}

func profileTable(recs *models.PersonalizedRecommendations) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Picks for %s\t%s\n", recs.Destination, recs.Source)
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "KIND\tNAME\tPRICE\tMATCH")
		for _, h := range recs.Hotels {
			fmt.Fprintf(tw, "hotel\t%s\t%s\t%d%%\n", h.Name, h.PriceRange, h.MatchScore)
		}
		for _, r := range recs.Restaurants {
			fmt.Fprintf(tw, "restaurant\t%s\t%s\t%d%%\n", r.Name, r.PriceRange, r.MatchScore)
		}
		for _, a := range recs.Activities {
			fmt.Fprintf(tw, "activity\t%s\tINR %.0f\t%d%%\n", a.Name, a.Cost, a.MatchScore)
		}
		for _, tip := range recs.LocalInsights {
			fmt.Fprintf(tw, "tip\t%s\t\t\n", tip)
		}
	}
}
