package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"goginie/models"
)

// ─── Amadeus Client ───────────────────────────────────────────────────────────

type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

func NewAmadeusClient(clientID, clientSecret, env string) *AmadeusClient {
	baseURL := "https://api.amadeus.com" // production
	if env == "" || env == "test" {
		baseURL = "https://test.api.amadeus.com" // free test environment
	}
	return &AmadeusClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *AmadeusClient) Configured() bool {
	return c != nil && c.clientID != "" && c.clientSecret != ""
}

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) get(ctx context.Context, path string, out any) error {
	if !c.Configured() {
		return fmt.Errorf("amadeus: %w", models.ErrMissingConfiguration)
	}
	token, err := c.getToken(ctx)
	if err != nil {
		return fmt.Errorf("auth failed: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return getJSON(ctx, c.httpClient, req, out)
}

// ─── Flight Search ────────────────────────────────────────────────────────────

var amadeusClassMap = map[string]string{
	"economy":  "ECONOMY",
	"premium":  "PREMIUM_ECONOMY",
	"business": "BUSINESS",
	"first":    "FIRST",
}

// SearchFlights searches one-way offers via the Flight Offers Search API.
func (c *AmadeusClient) SearchFlights(ctx context.Context, p models.FlightSearch) ([]models.Flight, error) {
	class, ok := amadeusClassMap[strings.ToLower(p.Class)]
	if !ok {
		class = "ECONOMY"
	}
	adults := p.Passengers
	if adults < 1 {
		adults = 1
	}

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&adults=%d&travelClass=%s&max=10&currencyCode=INR",
		url.QueryEscape(strings.ToUpper(p.From)),
		url.QueryEscape(strings.ToUpper(p.To)),
		url.QueryEscape(p.DepartureDate),
		adults,
		class,
	)

	var resp amadeusFlightOffersResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}
	return parseFlightOffers(resp, class), nil
}

// Amadeus flight offers response structures
type amadeusFlightOffersResponse struct {
	Data []amadeusFlightOffer `json:"data"`
}

type amadeusSegment struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
}

type amadeusFlightOffer struct {
	ID    string `json:"id"`
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Total      string `json:"total"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string           `json:"duration"`
		Segments []amadeusSegment `json:"segments"`
	} `json:"itineraries"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
}

func parseFlightOffers(resp amadeusFlightOffersResponse, class string) []models.Flight {
	flights := make([]models.Flight, 0, len(resp.Data))

	for _, offer := range resp.Data {
		if len(offer.Itineraries) < 1 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}

		total := offer.Price.GrandTotal
		if total == "" {
			total = offer.Price.Total
		}
		price := parsePrice(total)
		if price <= 0 {
			continue
		}

		outbound := offer.Itineraries[0]
		first := outbound.Segments[0]
		last := outbound.Segments[len(outbound.Segments)-1]

		airlineCode := first.CarrierCode
		if airlineCode == "" && len(offer.ValidatingAirlineCodes) > 0 {
			airlineCode = offer.ValidatingAirlineCodes[0]
		}

		flights = append(flights, models.Flight{
			ID:            "amadeus-" + offer.ID,
			Airline:       airlineName(airlineCode),
			AirlineCode:   airlineCode,
			FlightNumber:  airlineCode + first.Number,
			From:          first.Departure.IataCode,
			To:            last.Arrival.IataCode,
			DepartureTime: first.Departure.At,
			ArrivalTime:   last.Arrival.At,
			Duration:      parseDuration(outbound.Duration),
			Stops:         max(0, len(outbound.Segments)-1),
			Class:         class,
			Price:         price,
			Currency:      offer.Price.Currency,
		})
	}

	return flights
}

// ─── Hotel Search ─────────────────────────────────────────────────────────────

// SearchHotels searches hotels via the Hotel List + Hotel Offers APIs. Amadeus
// only understands IATA city codes, so free-text destinations are rejected.
func (c *AmadeusClient) SearchHotels(ctx context.Context, p models.HotelSearch) ([]models.Hotel, error) {
	code := strings.ToUpper(strings.TrimSpace(p.Location))
	if len(code) != 3 {
		return nil, fmt.Errorf("%q is not an IATA city code", p.Location)
	}

	hotelIDs, err := c.getHotelIDsByCity(ctx, airportToCity(code))
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}
	if len(hotelIDs) == 0 {
		return nil, nil
	}

	// Limit to first 20 IDs to avoid hitting rate limits
	if len(hotelIDs) > 20 {
		hotelIDs = hotelIDs[:20]
	}

	return c.getHotelOffers(ctx, hotelIDs, p)
}

type amadeusHotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
	} `json:"data"`
}

func (c *AmadeusClient) getHotelIDsByCity(ctx context.Context, cityCode string) ([]string, error) {
	path := fmt.Sprintf("/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=5&radiusUnit=KM&hotelSource=ALL",
		url.QueryEscape(cityCode))

	var resp amadeusHotelListResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}
	return ids, nil
}

type amadeusHotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				Lines    []string `json:"lines"`
				CityName string   `json:"cityName"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
			Room struct {
				TypeEstimated struct {
					Category string `json:"category"`
				} `json:"typeEstimated"`
			} `json:"room"`
		} `json:"offers"`
	} `json:"data"`
}

func (c *AmadeusClient) getHotelOffers(ctx context.Context, hotelIDs []string, p models.HotelSearch) ([]models.Hotel, error) {
	adults := p.Guests
	if adults < 1 {
		adults = 1
	}
	rooms := p.Rooms
	if rooms < 1 {
		rooms = 1
	}

	path := fmt.Sprintf("/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&adults=%d&roomQuantity=%d&currency=INR&bestRateOnly=true",
		url.QueryEscape(strings.Join(hotelIDs, ",")),
		url.QueryEscape(p.CheckIn),
		adults,
		rooms,
	)
	if p.CheckOut != "" {
		path += "&checkOutDate=" + url.QueryEscape(p.CheckOut)
	}

	var resp amadeusHotelOffersResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	nights := nightsBetween(p.CheckIn, p.CheckOut)
	hotels := make([]models.Hotel, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}

		// offer totals cover the whole stay
		price := parsePrice(item.Offers[0].Price.Total) / float64(nights)
		if price <= 0 {
			continue
		}

		address := item.Hotel.Address.CityName
		if len(item.Hotel.Address.Lines) > 0 {
			address = strings.Join(item.Hotel.Address.Lines, ", ") + ", " + address
		}
		if address == "" {
			address = item.Hotel.CityCode
		}

		roomType := item.Offers[0].Room.TypeEstimated.Category
		if roomType == "" {
			roomType = "Standard Room"
		}

		hotels = append(hotels, models.Hotel{
			ID:       "amadeus-" + item.Hotel.HotelID,
			Name:     item.Hotel.Name,
			Address:  address,
			Rating:   parseRating(item.Hotel.Rating),
			Price:    float64(int(price)),
			Currency: item.Offers[0].Price.Currency,
			RoomType: roomType,
		})
	}

	return hotels, nil
}

// ─── Fallback (when Amadeus is not configured or fails) ──────────────────────

// GenerateFlightsFallback produces plausible, deterministic INR flight data.
func GenerateFlightsFallback(p models.FlightSearch) []models.Flight {
	type routeInfo struct {
		basePrice float64
		duration  int // minutes
	}

	routes := map[string]routeInfo{
		"DEL-BOM": {5200, 130}, "BOM-DEL": {5200, 130},
		"DEL-BLR": {6100, 170}, "BLR-DEL": {6100, 170},
		"DEL-GOI": {5800, 150}, "GOI-DEL": {5800, 150},
		"BOM-BLR": {3900, 100}, "BLR-BOM": {3900, 100},
		"DEL-CDG": {38000, 560}, "CDG-DEL": {38000, 560},
		"DEL-DXB": {14500, 220}, "DXB-DEL": {14500, 220},
		"BOM-LHR": {42000, 600}, "LHR-BOM": {42000, 600},
		"DEL-SIN": {21000, 330}, "SIN-DEL": {21000, 330},
	}

	from := strings.ToUpper(strings.TrimSpace(p.From))
	to := strings.ToUpper(strings.TrimSpace(p.To))
	info, ok := routes[from+"-"+to]
	if !ok {
		h := stableHash(from, to)
		info = routeInfo{float64(4000 + int(h%60)*100), 90 + int(h%240)}
	}

	class := strings.ToUpper(p.Class)
	classMod := 1.0
	switch strings.ToLower(p.Class) {
	case "premium":
		classMod = 1.6
	case "business":
		classMod = 3.0
	case "first":
		classMod = 5.0
	default:
		class = "ECONOMY"
	}

	// Five airline options across price tiers
	type airlineOption struct {
		code     string
		priceMod float64
		stops    int
	}
	options := []airlineOption{
		{"6E", 1.00, 0},
		{"AI", 1.15, 0},
		{"UK", 1.30, 0},
		{"SG", 0.85, 1},
		{"QP", 0.90, 1},
	}

	depDate, err := time.Parse(models.DateLayout, p.DepartureDate)
	if err != nil {
		depDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	flights := make([]models.Flight, 0, len(options))
	for i, opt := range options {
		price := info.basePrice * opt.priceMod * classMod
		price = float64(int(price/50) * 50)

		dur := info.duration
		if opt.stops > 0 {
			dur += 90
		}

		depTime := time.Date(depDate.Year(), depDate.Month(), depDate.Day(), 6+i*3, 0, 0, 0, time.UTC)
		arrTime := depTime.Add(time.Duration(dur) * time.Minute)
		number := fmt.Sprintf("%s%d", opt.code, 100+int(stableHash(from, to, opt.code)%900))

		flights = append(flights, models.Flight{
			ID:            fmt.Sprintf("mock-flight-%d", i+1),
			Airline:       airlineName(opt.code),
			AirlineCode:   opt.code,
			FlightNumber:  number,
			From:          from,
			To:            to,
			DepartureTime: depTime.Format(time.RFC3339),
			ArrivalTime:   arrTime.Format(time.RFC3339),
			Duration:      formatDurationMin(dur),
			Stops:         opt.stops,
			Class:         class,
			Price:         price,
			Currency:      "INR",
		})
	}
	return flights
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// parseDuration converts ISO 8601 duration (PT5H30M) to human readable (5h 30m)
func parseDuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	hIdx := strings.Index(iso, "H")
	if hIdx >= 0 {
		result += iso[:hIdx] + "h"
		iso = iso[hIdx+1:]
	}
	mIdx := strings.Index(iso, "M")
	if mIdx >= 0 {
		if result != "" {
			result += " "
		}
		result += iso[:mIdx] + "m"
	}
	return result
}

func formatDurationMin(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

func parsePrice(s string) float64 {
	var price float64
	fmt.Sscanf(s, "%f", &price)
	return price
}

func parseRating(s string) float64 {
	if s == "" {
		return 4.0
	}
	var r float64
	fmt.Sscanf(s, "%f", &r)
	if r <= 0 {
		return 4.0
	}
	// Amadeus returns star ratings 1-5
	if r > 5 {
		r = 5
	}
	return r
}

func nightsBetween(checkIn, checkOut string) int {
	in, err1 := time.Parse(models.DateLayout, checkIn)
	out, err2 := time.Parse(models.DateLayout, checkOut)
	if err1 != nil || err2 != nil {
		return 1
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// airportToCity maps airport IATA codes to city codes for hotel search
func airportToCity(airport string) string {
	mapping := map[string]string{
		"LHR": "LON", "LGW": "LON", "STN": "LON",
		"CDG": "PAR", "ORY": "PAR",
		"JFK": "NYC", "LGA": "NYC", "EWR": "NYC",
		"DXB": "DXB",
		"DEL": "DEL",
		"BOM": "BOM",
		"BLR": "BLR",
		"GOI": "GOI", "GOX": "GOI",
		"MAA": "MAA",
		"CCU": "CCU",
		"FCO": "ROM", "CIA": "ROM",
		"NRT": "TYO", "HND": "TYO",
		"SIN": "SIN",
		"BKK": "BKK",
	}
	if city, ok := mapping[airport]; ok {
		return city
	}
	return airport // fallback: use as-is
}

// airlineName returns full airline name from IATA code
func airlineName(code string) string {
	names := map[string]string{
		"6E": "IndiGo",
		"AI": "Air India",
		"UK": "Vistara",
		"SG": "SpiceJet",
		"QP": "Akasa Air",
		"IX": "Air India Express",
		"EK": "Emirates",
		"QR": "Qatar Airways",
		"EY": "Etihad Airways",
		"AF": "Air France",
		"BA": "British Airways",
		"LH": "Lufthansa",
		"TK": "Turkish Airlines",
		"SQ": "Singapore Airlines",
		"TG": "Thai Airways",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code + " Airlines"
	}
	return "Unknown Airline"
}
