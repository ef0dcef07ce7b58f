package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/healthline-ai/hospital-assistant/internal/booking"
	"github.com/healthline-ai/hospital-assistant/internal/schedule"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

// FileStore persists the three tables as flat JSON files. The schedule and
// absence files are read on every call with no caching; the bookings file is
// replaced atomically on write so a failed save leaves the prior ledger
// intact. Missing or malformed files read as empty rather than failing the
// caller.
type FileStore struct {
	scheduleFile string
	absencesFile string
	bookingsFile string
	logger       *logging.Logger
}

// NewFileStore creates a store over the given file paths.
func NewFileStore(scheduleFile, absencesFile, bookingsFile string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileStore{
		scheduleFile: scheduleFile,
		absencesFile: absencesFile,
		bookingsFile: bookingsFile,
		logger:       logger,
	}
}

// LoadCatalog reads the weekly schedule template.
func (s *FileStore) LoadCatalog(ctx context.Context) ([]schedule.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := s.read(s.scheduleFile)
	if !ok {
		return nil, nil
	}
	var catalog []schedule.Entry
	if err := json.Unmarshal(data, &catalog); err != nil {
		s.logger.Warn("storage: malformed schedule file, treating as empty", "path", s.scheduleFile, "error", err)
		return nil, nil
	}
	return catalog, nil
}

// LoadAbsences reads the doctor absence register.
func (s *FileStore) LoadAbsences(ctx context.Context) (schedule.AbsenceSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := s.read(s.absencesFile)
	if !ok {
		return schedule.AbsenceSet{}, nil
	}
	var absences schedule.AbsenceSet
	if err := json.Unmarshal(data, &absences); err != nil {
		s.logger.Warn("storage: malformed absence file, treating as empty", "path", s.absencesFile, "error", err)
		return schedule.AbsenceSet{}, nil
	}
	return absences, nil
}

// LoadLedger reads the booking ledger.
func (s *FileStore) LoadLedger(ctx context.Context) ([]booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := s.read(s.bookingsFile)
	if !ok {
		return nil, nil
	}
	var ledger []booking.Booking
	if err := json.Unmarshal(data, &ledger); err != nil {
		s.logger.Warn("storage: malformed bookings file, treating as empty", "path", s.bookingsFile, "error", err)
		return nil, nil
	}
	return ledger, nil
}

// SaveLedger writes the full ledger to a temp file in the target directory
// and renames it into place.
func (s *FileStore) SaveLedger(ctx context.Context, ledger []booking.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ledger == nil {
		ledger = []booking.Booking{}
	}

	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode ledger: %w", err)
	}

	dir := filepath.Dir(s.bookingsFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "bookings-*.json")
	if err != nil {
		return fmt.Errorf("storage: create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close temp ledger: %w", err)
	}
	if err := os.Rename(tmpName, s.bookingsFile); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: replace ledger: %w", err)
	}
	return nil
}

// read returns the file contents, or ok=false when the file is missing or
// unreadable. Unreadable files are logged; missing ones are normal on first
// run.
func (s *FileStore) read(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("storage: unreadable file, treating as empty", "path", path, "error", err)
		}
		return nil, false
	}
	return data, true
}
