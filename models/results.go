package models

// SearchResponse is the uniform envelope every search adapter returns.
// Success=false always carries an empty Data; Total always equals len(Data).
type SearchResponse[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
	Error   string `json:"error,omitempty"`
	Source  string `json:"source,omitempty"`
}

func SearchOK[T any](data []T, source string) SearchResponse[T] {
	if data == nil {
		data = []T{}
	}
	return SearchResponse[T]{Success: true, Data: data, Total: len(data), Source: source}
}

func SearchFailed[T any](err error) SearchResponse[T] {
	return SearchResponse[T]{Success: false, Data: []T{}, Error: err.Error()}
}

type BookingResponse struct {
	Success bool           `json:"success"`
	Data    *BookingRecord `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ─── Search parameters ───────────────────────────────────────────────────────

type FlightSearch struct {
	From          string `json:"from" binding:"required"`
	To            string `json:"to" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
	Passengers    int    `json:"passengers"`
	Class         string `json:"class"`
}

type TrainSearch struct {
	From          string `json:"from" binding:"required"`
	To            string `json:"to" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
	Passengers    int    `json:"passengers"`
}

type HotelSearch struct {
	Location       string  `json:"location" binding:"required"`
	CheckIn        string  `json:"check_in" binding:"required"`
	CheckOut       string  `json:"check_out"`
	Guests         int     `json:"guests"`
	Rooms          int     `json:"rooms"`
	MaxNightlyRate float64 `json:"max_nightly_rate"`
}

type RestaurantSearch struct {
	Location string `json:"location" binding:"required"`
	Cuisine  string `json:"cuisine"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Guests   int    `json:"guests"`
}

type CabSearch struct {
	From       string `json:"from" binding:"required"`
	To         string `json:"to" binding:"required"`
	Passengers int    `json:"passengers"`
}

// ─── Booking parameters ──────────────────────────────────────────────────────

// BookingRequest carries the chosen offer into a book adapter. Amount is the
// total to charge; the caller applies passenger/night multipliers.
type BookingRequest struct {
	ItemID   string            `json:"item_id" binding:"required"`
	Title    string            `json:"title"`
	Amount   float64           `json:"amount"`
	Guests   int               `json:"guests"`
	Date     string            `json:"date"`
	TripCode string            `json:"trip_code,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}
