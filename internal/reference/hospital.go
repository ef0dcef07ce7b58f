package reference

import (
	"context"
	"encoding/json"
	"os"

	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

// HospitalInfo is static front-desk reference data.
type HospitalInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   string `json:"hours"`
}

// defaults keep the assistant answering basic questions even before an
// operator ships a hospital_info.json.
var defaultInfo = HospitalInfo{
	Name:  "HealthLine General Hospital",
	Phone: "042-111-000-432",
	Hours: "Outpatient clinics run Monday to Saturday, 9AM to 9PM.",
}

// Store serves hospital reference data from an optional JSON file.
type Store struct {
	file   string
	logger *logging.Logger
}

// NewStore creates a reference store reading from the given file path.
func NewStore(file string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{file: file, logger: logger}
}

// HospitalInfo returns the configured hospital details, falling back to the
// embedded defaults when the file is missing or malformed.
func (s *Store) HospitalInfo(ctx context.Context) HospitalInfo {
	if s.file == "" {
		return defaultInfo
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("reference: unreadable hospital info, using defaults", "path", s.file, "error", err)
		}
		return defaultInfo
	}

	info := defaultInfo
	if err := json.Unmarshal(data, &info); err != nil {
		s.logger.Warn("reference: malformed hospital info, using defaults", "path", s.file, "error", err)
		return defaultInfo
	}
	return info
}
