package booking

import (
	"context"
	"sync"
	"time"

	"github.com/healthline-ai/hospital-assistant/internal/schedule"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

// fakeStore is an in-memory booking.Store with injectable failures.
type fakeStore struct {
	mu       sync.Mutex
	catalog  []schedule.Entry
	absences schedule.AbsenceSet
	ledger   []Booking

	saveErr     error
	loadErr     error
	absencesErr error
}

func (f *fakeStore) LoadCatalog(ctx context.Context) ([]schedule.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]schedule.Entry(nil), f.catalog...), nil
}

func (f *fakeStore) LoadAbsences(ctx context.Context) (schedule.AbsenceSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.absencesErr != nil {
		return nil, f.absencesErr
	}
	if f.absences == nil {
		return schedule.AbsenceSet{}, nil
	}
	return f.absences, nil
}

func (f *fakeStore) LoadLedger(ctx context.Context) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]Booking, len(f.ledger))
	for i, b := range f.ledger {
		out[i] = b.Clone()
	}
	return out, nil
}

func (f *fakeStore) SaveLedger(ctx context.Context, ledger []Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.ledger = make([]Booking, len(ledger))
	for i, b := range ledger {
		f.ledger[i] = b.Clone()
	}
	return nil
}

func (f *fakeStore) ledgerSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ledger)
}

// recordingNotifier captures fire-and-forget notifications.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	phones   []string
}

func (n *recordingNotifier) Notify(ctx context.Context, phone, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.phones = append(n.phones, phone)
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

// monday is a fixed Monday used to pin "today" in tests.
var monday = time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)

// nextDateForWeekday returns the first date on or after from that falls on
// the given weekday.
func nextDateForWeekday(from time.Time, weekday time.Weekday) time.Time {
	delta := (int(weekday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, delta)
}

func cardiologyCatalog() []schedule.Entry {
	return []schedule.Entry{
		{Doctor: "Dr. Ali Mehdi", Specialty: "Cardiology", Clinic: "C1", Days: []string{"Monday"}, Time: "10AM-12PM"},
	}
}

func newTestService(store *fakeStore, notifier Notifier, opts ...Option) *Service {
	base := []Option{WithClock(func() time.Time { return monday })}
	return NewService(store, notifier, logging.NewText("error", nil), append(base, opts...)...)
}
