package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"goginie/models"
)

// BookingSaver persists a confirmed booking.
type BookingSaver interface {
	Add(record models.BookingRecord) (*models.BookingRecord, error)
}

// book turns a request into a confirmed record. No record exists unless the
// store write succeeds.
func (c *Catalog) book(ctx context.Context, typ models.BookingType, req models.BookingRequest) models.BookingResponse {
	if err := ctx.Err(); err != nil {
		return models.BookingResponse{Success: false, Error: err.Error()}
	}
	if req.ItemID == "" {
		return failedBooking(typ, &models.ValidationError{Field: "item_id", Message: "is required"})
	}
	if req.Amount < 0 {
		return failedBooking(typ, &models.ValidationError{Field: "amount", Message: "must not be negative"})
	}
	if c.store == nil {
		return failedBooking(typ, fmt.Errorf("booking store: %w", models.ErrMissingConfiguration))
	}

	record, err := NewBookingRecord(typ, req, time.Now().UTC())
	if err != nil {
		return failedBooking(typ, err)
	}

	saved, err := c.store.Add(record)
	if err != nil {
		return failedBooking(typ, err)
	}

	log.Printf("✅ %s booked: %s (%s) ₹%.0f", typ, saved.ConfirmationCode, saved.Title, saved.Amount)
	return models.BookingResponse{Success: true, Data: saved}
}

// NewBookingRecord builds a confirmed record with a time-ordered id.
func NewBookingRecord(typ models.BookingType, req models.BookingRequest, now time.Time) (models.BookingRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.BookingRecord{}, fmt.Errorf("failed to generate booking id: %w", err)
	}

	details := make(map[string]string, len(req.Details)+2)
	for k, v := range req.Details {
		details[k] = v
	}
	if req.Guests > 0 {
		details["guests"] = strconv.Itoa(req.Guests)
	}
	if req.Date != "" {
		details["date"] = req.Date
	}
	if len(details) == 0 {
		details = nil
	}

	return models.BookingRecord{
		ID:               id.String(),
		Type:             typ,
		Status:           models.StatusConfirmed,
		Timestamp:        now,
		Amount:           req.Amount,
		Currency:         "INR",
		ConfirmationCode: models.ConfirmationCode(typ, now),
		ItemID:           req.ItemID,
		Title:            firstNonEmpty(req.Title, req.ItemID),
		TripCode:         req.TripCode,
		Details:          details,
	}, nil
}

func failedBooking(typ models.BookingType, err error) models.BookingResponse {
	log.Printf("❌ %s booking failed: %v", typ, err)
	return models.BookingResponse{Success: false, Error: err.Error()}
}
