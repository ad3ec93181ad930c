package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alex-user-go/tripsearch/internal/concierge"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the concierge reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatHandler handles POST /chat. The reply is sent after the configured
// latency.
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := concierge.Reply(r.Context(), h.chatLatency, req.Message)
	if err != nil {
		h.logger.Debug("chat request ended before reply", "request_id", requestID(r), "error", err)
		return
	}
	h.metrics.IncChatMessages()
	h.writeJSON(w, r, http.StatusOK, ChatResponse{Response: reply})
}
