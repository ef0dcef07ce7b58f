// Package booking holds the deterministic core: availability projection over
// the weekly schedule, the append-only booking ledger, and token assignment.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/healthline-ai/hospital-assistant/internal/observability/metrics"
	"github.com/healthline-ai/hospital-assistant/internal/schedule"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

var tracer = otel.Tracer("healthline.internal.booking")

const (
	// DefaultHorizonDays is the rolling availability window.
	DefaultHorizonDays = 14
	// DefaultDailyCapacity caps bookings per doctor per calendar date.
	DefaultDailyCapacity = 20
)

// Service is the sole mutator of the booking ledger. Every mutation and every
// ledger snapshot runs under one mutex, which is what keeps concurrent book
// calls from handing out the same token number.
type Service struct {
	store    Store
	notifier Notifier
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics

	horizon  int
	capacity int
	now      func() time.Time

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithHorizon overrides the availability window length in days.
func WithHorizon(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.horizon = days
		}
	}
}

// WithDailyCapacity overrides the per-doctor per-date booking cap.
func WithDailyCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithClock overrides the time source, used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics attaches booking metrics.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs the booking service.
func NewService(store Store, notifier Notifier, logger *logging.Logger, opts ...Option) *Service {
	if store == nil {
		panic("booking: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		horizon:  DefaultHorizonDays,
		capacity: DefaultDailyCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BookRequest carries the caller's chosen slot plus patient identity.
type BookRequest struct {
	DoctorName   string `json:"doctor_name"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
}

// Book validates the requested slot, assigns the next token number and a
// fresh appointment id, and appends the booking to the ledger. The whole
// read-modify-write runs under the service mutex so two concurrent bookings
// can never observe the same ledger snapshot.
func (s *Service) Book(ctx context.Context, req BookRequest) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("healthline.doctor", req.DoctorName),
		attribute.String("healthline.date", req.BookingDate),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("storage_error")
		return nil, fmt.Errorf("booking: load catalog: %w", err)
	}
	entries := schedule.MatchDoctors(req.DoctorName, catalog)
	if len(entries) == 0 {
		s.metrics.ObserveBooking("doctor_not_found")
		return nil, fmt.Errorf("booking: %q: %w", req.DoctorName, ErrDoctorNotFound)
	}

	entry, err := s.validateSlot(ctx, entries, req.BookingDate, req.BookingTime)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrSlotUnavailable) {
			s.metrics.ObserveBooking("slot_unavailable")
		} else {
			s.metrics.ObserveBooking("storage_error")
		}
		return nil, err
	}

	ledger, err := s.store.LoadLedger(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("storage_error")
		return nil, fmt.Errorf("booking: load ledger: %w", err)
	}

	// Tokens are counted under the catalog name the record will carry, so
	// every spelling the matcher accepts lands in the same sequence.
	token := 1
	for _, b := range ledger {
		if b.DoctorName == entry.Doctor && b.BookingDate == req.BookingDate {
			token++
		}
	}
	if token > s.capacity {
		s.metrics.ObserveBooking("capacity_exceeded")
		return nil, fmt.Errorf("booking: %s on %s: %w", entry.Doctor, req.BookingDate, ErrCapacityExceeded)
	}

	record := Booking{
		AppointmentID: uuid.NewString(),
		TokenNumber:   token,
		PatientName:   req.PatientName,
		PatientPhone:  req.PatientPhone,
		DoctorName:    entry.Doctor,
		Specialty:     entry.Specialty,
		BookingDate:   req.BookingDate,
		BookingTime:   entry.Time,
		Clinic:        entry.Clinic,
	}

	ledger = append(ledger, record)
	if err := s.store.SaveLedger(ctx, ledger); err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("storage_error")
		return nil, fmt.Errorf("booking: save ledger: %w", err)
	}

	s.sendConfirmation(ctx, record)
	s.metrics.ObserveBooking("confirmed")
	s.logger.Info("appointment booked",
		"appointment_id", record.AppointmentID,
		"doctor", record.DoctorName,
		"date", record.BookingDate,
		"token", record.TokenNumber,
	)
	return &record, nil
}

// validateSlot confirms the requested (date, time) still maps to a live
// schedule entry: right weekday, matching time block, not on leave, doctor
// not absent that date. Booking trusts the caller picked from a slot list,
// but the list may be stale by the time the patient confirms.
func (s *Service) validateSlot(ctx context.Context, entries []schedule.Entry, date, timeBlock string) (*schedule.Entry, error) {
	day, err := time.Parse(isoDate, date)
	if err != nil {
		return nil, fmt.Errorf("booking: date %q is not YYYY-MM-DD: %w", date, ErrSlotUnavailable)
	}
	weekday := day.Weekday().String()

	absences, err := s.store.LoadAbsences(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking: load absences: %w", err)
	}

	for i := range entries {
		entry := &entries[i]
		if entry.OnLeave() {
			continue
		}
		if !entry.HasDay(weekday) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(entry.Time), strings.TrimSpace(timeBlock)) {
			continue
		}
		if absences.Contains(entry.Doctor, date) {
			continue
		}
		return entry, nil
	}
	return nil, fmt.Errorf("booking: %s at %s: %w", date, timeBlock, ErrSlotUnavailable)
}

// FindByPhone returns every booking whose patient phone matches exactly.
func (s *Service) FindByPhone(ctx context.Context, phone string) ([]Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.find_by_phone")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.store.LoadLedger(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("booking: load ledger: %w", err)
	}

	matches := []Booking{}
	for _, b := range ledger {
		if b.PatientPhone == phone {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

// FindByID returns the booking with the given appointment id, or an empty
// slice when the id was never issued. An unknown id is not a fault.
func (s *Service) FindByID(ctx context.Context, appointmentID string) ([]Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.find_by_id")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.store.LoadLedger(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("booking: load ledger: %w", err)
	}

	for _, b := range ledger {
		if b.AppointmentID == appointmentID {
			return []Booking{b}, nil
		}
	}
	return []Booking{}, nil
}

// Cancel removes the booking with the given appointment id and persists the
// shrunken ledger. Either the removal fully lands on disk or nothing changes.
func (s *Service) Cancel(ctx context.Context, appointmentID string) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("healthline.appointment_id", appointmentID))

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.store.LoadLedger(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveCancellation("storage_error")
		return nil, fmt.Errorf("booking: load ledger: %w", err)
	}

	index := -1
	for i, b := range ledger {
		if b.AppointmentID == appointmentID {
			index = i
			break
		}
	}
	if index < 0 {
		s.metrics.ObserveCancellation("not_found")
		return nil, fmt.Errorf("booking: %q: %w", appointmentID, ErrNotFound)
	}

	removed := ledger[index]
	updated := append(append([]Booking{}, ledger[:index]...), ledger[index+1:]...)
	if err := s.store.SaveLedger(ctx, updated); err != nil {
		span.RecordError(err)
		s.metrics.ObserveCancellation("storage_error")
		return nil, fmt.Errorf("booking: save ledger: %w", err)
	}

	s.metrics.ObserveCancellation("cancelled")
	s.logger.Info("appointment cancelled",
		"appointment_id", removed.AppointmentID,
		"doctor", removed.DoctorName,
		"date", removed.BookingDate,
	)
	return &removed, nil
}

// sendConfirmation fires the patient notification without tying the booking's
// fate to delivery.
func (s *Service) sendConfirmation(ctx context.Context, b Booking) {
	if s.notifier == nil {
		return
	}
	message := fmt.Sprintf(
		"Your appointment with %s is confirmed for %s at %s. Clinic: %s. Token number: %d.",
		b.DoctorName, b.BookingDate, b.BookingTime, b.Clinic, b.TokenNumber,
	)
	go s.notifier.Notify(context.WithoutCancel(ctx), b.PatientPhone, message)
}
