package booking

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/healthline-ai/hospital-assistant/internal/schedule"
)

const isoDate = "2006-01-02"

// SlotQuery narrows the catalog before slots are projected. Both filters are
// optional; specialty is applied first, then the doctor query.
type SlotQuery struct {
	Doctor    string `json:"doctor,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

// ComputeSlots projects bookable slots over the service's horizon, starting
// today. A query that matches no doctors yields an empty slice, not an error.
// The ledger snapshot used for the capacity check is taken under the same
// lock that serializes Book and Cancel, so a slot list never reflects a
// half-applied mutation.
func (s *Service) ComputeSlots(ctx context.Context, q SlotQuery) ([]schedule.Slot, error) {
	ctx, span := tracer.Start(ctx, "booking.compute_slots")
	defer span.End()
	span.SetAttributes(
		attribute.String("healthline.doctor_query", q.Doctor),
		attribute.String("healthline.specialty_query", q.Specialty),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("booking: load catalog: %w", err)
	}

	candidates := catalog
	if q.Specialty != "" {
		candidates = schedule.FilterBySpecialty(q.Specialty, candidates)
	}
	if q.Doctor != "" {
		candidates = schedule.MatchDoctors(q.Doctor, candidates)
	}

	bookable := candidates[:0:0]
	for _, entry := range candidates {
		if !entry.OnLeave() {
			bookable = append(bookable, entry)
		}
	}
	if len(bookable) == 0 {
		s.metrics.ObserveSlotQuery(0)
		return []schedule.Slot{}, nil
	}

	absences, err := s.store.LoadAbsences(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("booking: load absences: %w", err)
	}
	ledger, err := s.store.LoadLedger(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("booking: load ledger: %w", err)
	}
	counts := countByDoctorDate(ledger)

	today := s.now()
	var slots []schedule.Slot
	for i := 0; i < s.horizon; i++ {
		day := today.AddDate(0, 0, i)
		date := day.Format(isoDate)
		weekday := day.Weekday().String()

		for _, entry := range bookable {
			if !entry.HasDay(weekday) {
				continue
			}
			if absences.Contains(entry.Doctor, date) {
				continue
			}
			booked := counts[doctorDateKey(entry.Doctor, date)]
			if booked >= s.capacity {
				continue
			}
			slots = append(slots, schedule.Slot{
				Doctor:    entry.Doctor,
				Date:      date,
				Day:       weekday,
				Time:      entry.Time,
				Clinic:    entry.Clinic,
				Remaining: s.capacity - booked,
			})
		}
	}

	if slots == nil {
		slots = []schedule.Slot{}
	}
	s.metrics.ObserveSlotQuery(len(slots))
	span.SetAttributes(attribute.Int("healthline.slots", len(slots)))
	return slots, nil
}

func countByDoctorDate(ledger []Booking) map[string]int {
	counts := make(map[string]int, len(ledger))
	for _, b := range ledger {
		counts[doctorDateKey(b.DoctorName, b.BookingDate)]++
	}
	return counts
}

func doctorDateKey(doctor, date string) string {
	return doctor + "|" + date
}
