package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

func TestLogSMSSenderWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSMSSender(logging.NewText("info", &buf))

	sender.Notify(context.Background(), "03001234567", "Your appointment is confirmed.")

	out := buf.String()
	assert.Contains(t, out, "03001234567")
	assert.Contains(t, out, "Your appointment is confirmed.")
}

func TestNewLogSMSSenderNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLogSMSSender(nil).Notify(context.Background(), "1", "hello")
	})
}
