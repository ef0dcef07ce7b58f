package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/healthline-ai/hospital-assistant/internal/observability/metrics"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

var tracer = otel.Tracer("healthline.internal.agent")

// ErrEmptyPrompt is returned when a chat turn carries no usable text.
var ErrEmptyPrompt = errors.New("prompt is empty")

const defaultMaxToolRounds = 8

// Service runs the agent loop: it feeds the conversation to the LLM,
// executes whatever tools the model asks for, and returns the model's final
// reply. Tool traffic stays inside a single turn; only user and assistant
// text is persisted to the session history.
type Service struct {
	llm         LLMClient
	tools       *Toolset
	history     HistoryStore
	logger      *logging.Logger
	metrics     *metrics.ChatMetrics
	maxRounds   int
	temperature float32
}

// ServiceOption configures the agent service.
type ServiceOption func(*Service)

// WithMaxToolRounds caps how many tool-call rounds one turn may use.
func WithMaxToolRounds(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxRounds = n
		}
	}
}

// WithTemperature sets the sampling temperature for completions.
func WithTemperature(t float32) ServiceOption {
	return func(s *Service) {
		s.temperature = t
	}
}

// WithChatMetrics attaches chat metrics.
func WithChatMetrics(m *metrics.ChatMetrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs the agent service.
func NewService(llm LLMClient, tools *Toolset, history HistoryStore, logger *logging.Logger, opts ...ServiceOption) *Service {
	if llm == nil {
		panic("agent: llm client required")
	}
	if tools == nil {
		panic("agent: toolset required")
	}
	if history == nil {
		history = NewMemoryHistoryStore()
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		llm:         llm,
		tools:       tools,
		history:     history,
		logger:      logger,
		maxRounds:   defaultMaxToolRounds,
		temperature: 0.2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat processes one user turn for the given session and returns the
// assistant's reply.
func (s *Service) Chat(ctx context.Context, sessionID, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "agent.chat")
	defer span.End()
	span.SetAttributes(attribute.String("healthline.session_id", sessionID))

	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	history, err := s.history.Load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveRequest("history_error")
		return "", fmt.Errorf("agent: load session history: %w", err)
	}

	persisted := append(history, ChatMessage{Role: ChatRoleUser, Content: prompt})
	working := append([]ChatMessage(nil), persisted...)

	for round := 0; round <= s.maxRounds; round++ {
		start := time.Now()
		resp, err := s.llm.Complete(ctx, LLMRequest{
			System:      []string{systemPrompt},
			Messages:    working,
			Tools:       s.tools.Definitions(),
			Temperature: s.temperature,
		})
		s.metrics.ObserveLLMLatency(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			s.metrics.ObserveRequest("llm_error")
			return "", fmt.Errorf("agent: completion failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			persisted = append(persisted, ChatMessage{Role: ChatRoleAssistant, Content: resp.Text})
			if err := s.history.Save(ctx, sessionID, persisted); err != nil {
				// The reply is already produced; losing history hurts the next
				// turn, not this one.
				s.logger.Warn("failed to save session history", "session_id", sessionID, "error", err)
			}
			s.metrics.ObserveRequest("ok")
			return resp.Text, nil
		}

		working = append(working, ChatMessage{
			Role:      ChatRoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})
		results := make([]ToolResult, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			results = append(results, s.tools.Execute(ctx, call))
		}
		working = append(working, ChatMessage{Role: ChatRoleTool, ToolResults: results})
	}

	s.metrics.ObserveRequest("tool_rounds_exceeded")
	return "", fmt.Errorf("agent: gave up after %d tool rounds", s.maxRounds)
}
