package storage

import (
	"context"
	"sync"

	"github.com/healthline-ai/hospital-assistant/internal/booking"
	"github.com/healthline-ai/hospital-assistant/internal/schedule"
)

// MemoryStore is an in-memory booking.Store, used by tests and demos. Loads
// hand out copies so callers can never alias the store's state.
type MemoryStore struct {
	mu       sync.Mutex
	catalog  []schedule.Entry
	absences schedule.AbsenceSet
	ledger   []booking.Booking
}

// NewMemoryStore creates a store seeded with the given reference data.
func NewMemoryStore(catalog []schedule.Entry, absences schedule.AbsenceSet) *MemoryStore {
	if absences == nil {
		absences = schedule.AbsenceSet{}
	}
	return &MemoryStore{
		catalog:  catalog,
		absences: absences,
	}
}

func (s *MemoryStore) LoadCatalog(ctx context.Context) ([]schedule.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]schedule.Entry, len(s.catalog))
	for i, e := range s.catalog {
		e.Days = append([]string(nil), e.Days...)
		out[i] = e
	}
	return out, nil
}

func (s *MemoryStore) LoadAbsences(ctx context.Context) (schedule.AbsenceSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(schedule.AbsenceSet, len(s.absences))
	for doctor, dates := range s.absences {
		out[doctor] = append([]string(nil), dates...)
	}
	return out, nil
}

func (s *MemoryStore) LoadLedger(ctx context.Context) ([]booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]booking.Booking, len(s.ledger))
	for i, b := range s.ledger {
		out[i] = b.Clone()
	}
	return out, nil
}

func (s *MemoryStore) SaveLedger(ctx context.Context, ledger []booking.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = make([]booking.Booking, len(ledger))
	for i, b := range ledger {
		s.ledger[i] = b.Clone()
	}
	return nil
}
