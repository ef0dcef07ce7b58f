package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

// Handler wires HTTP chat requests to the agent service.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a chat handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// ChatRequest is the body of POST /chat. SessionID is optional; a fresh one
// is minted and returned when omitted.
type ChatRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the success body of POST /chat.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.service.Chat(r.Context(), req.SessionID, req.Prompt)
	if err != nil {
		if errors.Is(err, ErrEmptyPrompt) {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Prompt must not be empty"})
			return
		}
		h.logger.Error("chat turn failed", "session_id", req.SessionID, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "An internal error occurred. Please try again."})
		return
	}

	h.writeJSON(w, http.StatusOK, ChatResponse{Response: reply, SessionID: req.SessionID})
}

// Status handles GET /, a liveness line for humans.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "HealthLine assistant API is running."})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
