package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"goginie/models"
)

// BookingsKey is the key the booking collection lives under.
const BookingsKey = "bookings"

// BookingStore persists the whole booking collection as one JSON document.
// Every mutation is a read-modify-write of that document inside a
// transaction that locks the document row, so writers in other processes
// queue behind it. mu serializes writers within this process.
type BookingStore struct {
	db *DB
	mu sync.Mutex
}

func NewBookingStore(db *DB) *BookingStore {
	return &BookingStore{db: db}
}

// ─── Reads ────────────────────────────────────────────────────────────────────

// List returns bookings matching filter, newest first.
func (s *BookingStore) List(filter models.BookingFilter) ([]models.BookingRecord, error) {
	all, err := s.load(s.db)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]models.BookingRecord, 0, len(all))
	for _, b := range all {
		if filter.Type != "" && b.Type != filter.Type {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if q != "" && !matchesQuery(b, q) {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *BookingStore) Get(id string) (*models.BookingRecord, error) {
	all, err := s.load(s.db)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrBookingNotFound, id)
}

func (s *BookingStore) Stats() (models.BookingStats, error) {
	all, err := s.load(s.db)
	if err != nil {
		return models.BookingStats{}, err
	}

	var st models.BookingStats
	st.Total = len(all)
	for _, b := range all {
		switch b.Status {
		case models.StatusConfirmed:
			st.Confirmed++
		case models.StatusPending:
			st.Pending++
		case models.StatusCancelled:
			st.Cancelled++
		}
		if b.Status != models.StatusCancelled {
			st.TotalSpent += b.Amount
		}
	}
	return st, nil
}

// ─── Mutations ────────────────────────────────────────────────────────────────

// Add appends a record and returns it as stored.
func (s *BookingStore) Add(record models.BookingRecord) (*models.BookingRecord, error) {
	if record.ID == "" {
		return nil, fmt.Errorf("booking record has no id")
	}
	if record.Status == "" {
		record.Status = models.StatusConfirmed
	}

	err := s.mutate(func(all []models.BookingRecord) ([]models.BookingRecord, error) {
		for _, b := range all {
			if b.ID == record.ID {
				return nil, fmt.Errorf("booking %s already exists", record.ID)
			}
		}
		return append(all, record), nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus sets the status of one record.
func (s *BookingStore) UpdateStatus(id string, status models.BookingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid booking status %q", status)
	}
	return s.mutate(func(all []models.BookingRecord) ([]models.BookingRecord, error) {
		for i := range all {
			if all[i].ID == id {
				all[i].Status = status
				return all, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", models.ErrBookingNotFound, id)
	})
}

// Cancel marks a booking cancelled. Cancelling twice is not an error.
func (s *BookingStore) Cancel(id string) error {
	return s.UpdateStatus(id, models.StatusCancelled)
}

// Remove hard-deletes a record.
func (s *BookingStore) Remove(id string) error {
	return s.mutate(func(all []models.BookingRecord) ([]models.BookingRecord, error) {
		for i := range all {
			if all[i].ID == id {
				return append(all[:i], all[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", models.ErrBookingNotFound, id)
	})
}

// ─── Document I/O ─────────────────────────────────────────────────────────────

func (s *BookingStore) mutate(fn func([]models.BookingRecord) ([]models.BookingRecord, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	raw, err := s.db.lockValue(tx, BookingsKey)
	if err != nil {
		return fmt.Errorf("failed to lock bookings: %w", err)
	}
	all, err := decodeBookings(raw)
	if err != nil {
		return err
	}
	updated, err := fn(all)
	if err != nil {
		return err
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode bookings: %w", err)
	}
	if err := s.db.putValue(tx, BookingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write bookings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bookings: %w", err)
	}
	return nil
}

func (s *BookingStore) load(q querier) ([]models.BookingRecord, error) {
	raw, ok, err := s.db.getValue(q, BookingsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	if !ok {
		return []models.BookingRecord{}, nil
	}
	return decodeBookings(raw)
}

func decodeBookings(raw string) ([]models.BookingRecord, error) {
	if raw == "" {
		return []models.BookingRecord{}, nil
	}
	var all []models.BookingRecord
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("failed to parse stored bookings: %w", err)
	}
	return all, nil
}

func matchesQuery(b models.BookingRecord, q string) bool {
	fields := []string{b.ID, b.Title, b.ConfirmationCode, b.ItemID, b.TripCode, string(b.Type)}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

var _ querier = (*sql.Tx)(nil)
