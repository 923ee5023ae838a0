package models

import "time"

type BookingType string

const (
	BookingFlight     BookingType = "flight"
	BookingTrain      BookingType = "train"
	BookingHotel      BookingType = "hotel"
	BookingCab        BookingType = "cab"
	BookingRestaurant BookingType = "restaurant"
)

func (t BookingType) Valid() bool {
	switch t {
	case BookingFlight, BookingTrain, BookingHotel, BookingCab, BookingRestaurant:
		return true
	}
	return false
}

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// BookingRecord is the persisted outcome of one booking action.
type BookingRecord struct {
	ID               string            `json:"id" yaml:"id"`
	Type             BookingType       `json:"type" yaml:"type"`
	Status           BookingStatus     `json:"status" yaml:"status"`
	Timestamp        time.Time         `json:"timestamp" yaml:"timestamp"`
	Amount           float64           `json:"amount" yaml:"amount"`
	Currency         string            `json:"currency" yaml:"currency"`
	ConfirmationCode string            `json:"confirmation_code" yaml:"confirmation_code"`
	ItemID           string            `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	Title            string            `json:"title,omitempty" yaml:"title,omitempty"`
	TripCode         string            `json:"trip_code,omitempty" yaml:"trip_code,omitempty"`
	Details          map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// BookingFilter narrows List results. Zero values match everything.
type BookingFilter struct {
	Type   BookingType
	Status BookingStatus
	Query  string
}

type BookingStats struct {
	Total      int     `json:"total" yaml:"total"`
	Confirmed  int     `json:"confirmed" yaml:"confirmed"`
	Pending    int     `json:"pending" yaml:"pending"`
	Cancelled  int     `json:"cancelled" yaml:"cancelled"`
	TotalSpent float64 `json:"total_spent" yaml:"total_spent"`
}
