package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/assistant"
	"github.com/dealerdesk/dealerdesk/internal/observability"
)

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	logger    *observability.Logger
	assistant *assistant.Assistant
}

// NewChatHandler creates a chat handler.
func NewChatHandler(logger *observability.Logger, asst *assistant.Assistant) *ChatHandler {
	return &ChatHandler{logger: logger, assistant: asst}
}

// ChatRequestDTO is the body for POST /api/chat.
type ChatRequestDTO struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reply, err := h.assistant.HandleMessage(r.Context(), req.ConversationID, req.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			h.writeError(w, http.StatusBadRequest, "message is required", "")
			return
		}
		h.logger.Error().Err(err).Msg("Chat failed")
		h.writeError(w, http.StatusInternalServerError, "chat failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
