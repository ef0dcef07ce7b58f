package agent

import (
	"context"
	"errors"
	"time"

	"github.com/healthline-ai/hospital-assistant/internal/booking"
	"github.com/healthline-ai/hospital-assistant/internal/reference"
	"github.com/healthline-ai/hospital-assistant/internal/schedule"
	"github.com/healthline-ai/hospital-assistant/internal/storage"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

// monday pins "today" so slot math in fixtures is stable.
var monday = time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)

func testLogger() *logging.Logger {
	return logging.NewText("error", nil)
}

func testCatalog() []schedule.Entry {
	return []schedule.Entry{
		{Doctor: "Dr. Ali Mehdi", Specialty: "Cardiology", Clinic: "C1", Days: []string{"Monday"}, Time: "10AM-12PM"},
		{Doctor: "Dr. Ali Mehdi", Specialty: "Cardiology", Clinic: "C2", Days: []string{"Thursday"}, Time: "04:00PM TO 05:00PM"},
		{Doctor: "Prof Sara Khan", Specialty: "Consultant Physicians/Specialists Internal Medicine", Clinic: "Main", Days: []string{"Tuesday"}, Time: "09AM-11AM"},
	}
}

func newTestToolset() (*Toolset, *booking.Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore(testCatalog(), nil)
	bookings := booking.NewService(store, nil, testLogger(),
		booking.WithClock(func() time.Time { return monday }))
	ref := reference.NewStore("", testLogger())
	toolset := NewToolset(bookings, store, ref, testLogger(), nil)
	return toolset, bookings, store
}

// scriptedLLM replays canned responses and records every request it sees.
type scriptedLLM struct {
	responses []LLMResponse
	requests  []LLMRequest
	err       error
}

func (s *scriptedLLM) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return LLMResponse{}, s.err
	}
	if len(s.responses) == 0 {
		return LLMResponse{}, errors.New("scriptedLLM: out of responses")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}
