package booking

import (
	"context"

	"github.com/healthline-ai/hospital-assistant/internal/schedule"
)

// Store abstracts the persisted tables the booking core reads and writes.
// The catalog and absence set are read-only reference data; the ledger is the
// only mutable state and SaveLedger must replace it atomically, so a failed
// write leaves the previous ledger intact.
type Store interface {
	LoadCatalog(ctx context.Context) ([]schedule.Entry, error)
	LoadAbsences(ctx context.Context) (schedule.AbsenceSet, error)
	LoadLedger(ctx context.Context) ([]Booking, error)
	SaveLedger(ctx context.Context, ledger []Booking) error
}

// Notifier delivers a fire-and-forget message to a patient. Implementations
// must not block booking on delivery and failures are never surfaced.
type Notifier interface {
	Notify(ctx context.Context, phone, message string)
}
