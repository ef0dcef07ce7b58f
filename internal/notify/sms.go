package notify

import (
	"context"

	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

// LogSMSSender simulates SMS delivery by writing each message to the
// structured log. It stands in for a real gateway in every current
// deployment; the booking core only ever sees the fire-and-forget
// booking.Notifier contract, so swapping in a provider later is a wiring
// change, not a core change.
type LogSMSSender struct {
	logger *logging.Logger
}

// NewLogSMSSender creates a log-backed SMS sender.
func NewLogSMSSender(logger *logging.Logger) *LogSMSSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSMSSender{logger: logger}
}

// Notify writes the message to the log. It never reports failure.
func (s *LogSMSSender) Notify(ctx context.Context, phone, message string) {
	s.logger.Info("sms sent", "to", phone, "message", message)
}
