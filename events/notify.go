package events

import (
	"context"
	"log"
)

// LogNotifications is the default notification sink: it writes every trip
// event to the log until ctx is done.
func LogNotifications(ctx context.Context, bus *Bus) error {
	ch, err := bus.Subscribe(ctx)
	if err != nil {
		return err
	}
	go func() {
		for e := range ch {
			log.Println(Describe(e))
		}
	}()
	return nil
}

// Describe renders an event as a one-line notification.
func Describe(e Event) string {
	switch e.Kind {
	case PhaseChanged:
		return "🔄 Trip " + e.RunID + " → " + e.Phase
	case PlanReady:
		return "📋 Trip " + e.RunID + " plan ready for review: " + e.Message
	case CategoryBooked:
		return "✅ Trip " + e.RunID + " " + e.Category + " booked: " + e.Message
	case CategoryFailed:
		return "❌ Trip " + e.RunID + " " + e.Category + " failed: " + e.Message
	case PlanRejected:
		return "🚫 Trip " + e.RunID + " plan rejected"
	case PlanningFailed:
		return "❌ Trip " + e.RunID + " planning failed: " + e.Message
	default:
		return "ℹ️  Trip " + e.RunID + " " + string(e.Kind)
	}
}
