package services

import (
	"context"
	"log"
	"strings"

	"goginie/config"
	"goginie/models"
)

// Catalog is the search/book surface for every travel domain. Each search
// walks its provider chain and ends in deterministic mock data, so a valid
// request always succeeds.
type Catalog struct {
	Amadeus     *AmadeusClient
	Railway     *RailwayClient
	RapidHotels *RapidHotelsClient
	Zomato      *ZomatoClient
	Weather     *WeatherClient

	store BookingSaver
}

func NewCatalog(cfg *config.Config, store BookingSaver) *Catalog {
	c := &Catalog{
		Amadeus:     NewAmadeusClient(cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusEnv),
		Railway:     NewRailwayClient(cfg.RailwayEndpoints, cfg.RailwayAPIKey),
		RapidHotels: NewRapidHotelsClient(cfg.RapidAPIKey),
		Zomato:      NewZomatoClient(cfg.ZomatoAPIKey),
		Weather:     NewWeatherClient(cfg.OpenWeatherAPIKey),
		store:       store,
	}

	if c.Amadeus.Configured() {
		log.Printf("✅ Amadeus configured (%s)", c.Amadeus.baseURL)
	} else {
		log.Println("⚠️  AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set — flights will use estimated data")
	}
	return c
}

// ─── Flights ──────────────────────────────────────────────────────────────────

func (c *Catalog) SearchFlights(ctx context.Context, p models.FlightSearch) models.SearchResponse[models.Flight] {
	if err := requireFields("from", p.From, "to", p.To, "departure_date", p.DepartureDate); err != nil {
		return models.SearchFailed[models.Flight](err)
	}

	var chain []Provider[models.FlightSearch, models.Flight]
	if c.Amadeus.Configured() {
		chain = append(chain, Provider[models.FlightSearch, models.Flight]{Name: "amadeus", Search: c.Amadeus.SearchFlights})
	}
	return searchChain(ctx, "flight", chain, p, GenerateFlightsFallback)
}

func (c *Catalog) BookFlight(ctx context.Context, req models.BookingRequest) models.BookingResponse {
	return c.book(ctx, models.BookingFlight, req)
}

// ─── Trains ───────────────────────────────────────────────────────────────────

func (c *Catalog) SearchTrains(ctx context.Context, p models.TrainSearch) models.SearchResponse[models.Train] {
	if err := requireFields("from", p.From, "to", p.To); err != nil {
		return models.SearchFailed[models.Train](err)
	}
	return searchChain(ctx, "train", c.Railway.Providers(), p, MockTrains)
}

func (c *Catalog) BookTrain(ctx context.Context, req models.BookingRequest) models.BookingResponse {
	return c.book(ctx, models.BookingTrain, req)
}

// ─── Hotels ───────────────────────────────────────────────────────────────────

// SearchHotels drops offers above MaxNightlyRate after the chain resolves, so a
// tight ceiling can leave the result empty.
func (c *Catalog) SearchHotels(ctx context.Context, p models.HotelSearch) models.SearchResponse[models.Hotel] {
	if err := requireFields("location", p.Location); err != nil {
		return models.SearchFailed[models.Hotel](err)
	}

	var chain []Provider[models.HotelSearch, models.Hotel]
	if c.Amadeus.Configured() {
		chain = append(chain, Provider[models.HotelSearch, models.Hotel]{Name: "amadeus", Search: c.Amadeus.SearchHotels})
	}
	if c.RapidHotels.Configured() {
		chain = append(chain, Provider[models.HotelSearch, models.Hotel]{Name: hotelsHost, Search: c.RapidHotels.SearchHotels})
	}

	resp := searchChain(ctx, "hotel", chain, p, MockHotels)
	if p.MaxNightlyRate > 0 {
		filtered := withinNightlyRate(resp.Data, p.MaxNightlyRate)
		if len(filtered) < len(resp.Data) {
			log.Printf("⚠️  %d of %d hotels above nightly ceiling %.0f", len(resp.Data)-len(filtered), len(resp.Data), p.MaxNightlyRate)
		}
		resp = models.SearchOK(filtered, resp.Source)
	}
	return resp
}

func (c *Catalog) BookHotel(ctx context.Context, req models.BookingRequest) models.BookingResponse {
	return c.book(ctx, models.BookingHotel, req)
}

// ─── Restaurants ──────────────────────────────────────────────────────────────

func (c *Catalog) SearchRestaurants(ctx context.Context, p models.RestaurantSearch) models.SearchResponse[models.Restaurant] {
	if err := requireFields("location", p.Location); err != nil {
		return models.SearchFailed[models.Restaurant](err)
	}

	var chain []Provider[models.RestaurantSearch, models.Restaurant]
	if c.Zomato.Configured() {
		chain = append(chain, Provider[models.RestaurantSearch, models.Restaurant]{Name: "zomato", Search: c.Zomato.SearchRestaurants})
	}
	return searchChain(ctx, "restaurant", chain, p, MockRestaurants)
}

func (c *Catalog) BookRestaurant(ctx context.Context, req models.BookingRequest) models.BookingResponse {
	return c.book(ctx, models.BookingRestaurant, req)
}

// ─── Cabs ─────────────────────────────────────────────────────────────────────

// SearchCabs has no remote provider; fares come from the route estimate.
func (c *Catalog) SearchCabs(ctx context.Context, p models.CabSearch) models.SearchResponse[models.Cab] {
	if err := requireFields("from", p.From, "to", p.To); err != nil {
		return models.SearchFailed[models.Cab](err)
	}
	return models.SearchOK(QuoteCabs(p), "estimate")
}

func (c *Catalog) BookCab(ctx context.Context, req models.BookingRequest) models.BookingResponse {
	return c.book(ctx, models.BookingCab, req)
}

// requireFields takes name/value pairs and reports the first blank value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return &models.ValidationError{Field: pairs[i], Message: "is required"}
		}
	}
	return nil
}
