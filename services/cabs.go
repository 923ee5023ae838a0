package services

import (
	"fmt"
	"math"
	"strings"

	"goginie/models"
)

// ─── Cab Fares ────────────────────────────────────────────────────────────────

const (
	cabBaseFare  = 50.0 // INR
	cabPerKmRate = 12.0 // INR
)

// RouteEstimate is a distance/duration estimate between two places.
type RouteEstimate struct {
	DistanceKm  float64
	DurationMin int
}

// EstimateRoute returns a stable 10-59 km / 30-89 min estimate for a pair of
// places. There is no distance-matrix provider behind it.
func EstimateRoute(from, to string) RouteEstimate {
	h := stableHash(strings.ToLower(strings.TrimSpace(from)), strings.ToLower(strings.TrimSpace(to)))
	return RouteEstimate{
		DistanceKm:  float64(10 + h%50),
		DurationMin: 30 + int((h/50)%60),
	}
}

// CabFare is the economy fare for a distance.
func CabFare(distanceKm float64) float64 {
	return math.Round(cabBaseFare + distanceKm*cabPerKmRate)
}

// QuoteCabs returns the economy, premium and luxury tiers for a route.
func QuoteCabs(p models.CabSearch) []models.Cab {
	route := EstimateRoute(p.From, p.To)
	fare := CabFare(route.DistanceKm)

	tiers := []struct {
		name, typ  string
		multiplier float64
	}{
		{"Economy Cab", "economy", 1},
		{"Premium Cab", "premium", 1.5},
		{"Luxury Cab", "luxury", 2},
	}

	cabs := make([]models.Cab, 0, len(tiers))
	for i, t := range tiers {
		cabs = append(cabs, models.Cab{
			ID:         fmt.Sprintf("cab_%d", i+1),
			Name:       t.name,
			Type:       t.typ,
			From:       p.From,
			To:         p.To,
			DistanceKm: route.DistanceKm,
			Distance:   fmt.Sprintf("%.0f km", route.DistanceKm),
			Duration:   fmt.Sprintf("%d min", route.DurationMin),
			Price:      math.Round(fare * t.multiplier),
			Currency:   "INR",
			Capacity:   4,
		})
	}
	return cabs
}
