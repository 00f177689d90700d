package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/inbound"
	"github.com/nourishly/v1/internal/ports/outbound"
	"github.com/nourishly/v1/pkg/errors"
	"go.uber.org/zap"
)

// ChatHandlers handles the streaming chef chat
type ChatHandlers struct {
	chatService inbound.ChatService
	logger      *zap.Logger
}

// NewChatHandlers creates a new chat handlers instance
func NewChatHandlers(chatService inbound.ChatService, logger *zap.Logger) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatService,
		logger:      logger,
	}
}

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
	History  []struct {
		Role string `json:"role"`
		Text string `json:"text"`
	} `json:"history,omitempty"`
}

// Stream handles POST /api/v1/chat/stream and replies with server-sent
// events: one "delta" event per text chunk, then a single terminal
// "done" or "error" event. Closing the connection cancels the stream.
func (h *ChatHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, h.logger, errors.NewInternalError("streaming unsupported by connection"))
		return
	}

	history := make([]outbound.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, outbound.ChatTurn{Role: turn.Role, Text: turn.Text})
	}

	deltas, err := h.chatService.Stream(r.Context(), inbound.ChatCommand{
		History:  history,
		Message:  req.Message,
		Language: profile.Language(req.Language),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for delta := range deltas {
		if delta.Err != nil {
			writeEvent(w, "error", delta.Err.Error())
			flusher.Flush()
			return
		}
		writeEvent(w, "delta", delta.Text)
		flusher.Flush()
	}

	writeEvent(w, "done", "")
	flusher.Flush()
}

// writeEvent writes one server-sent event. The payload is split on
// newlines into one data field per line; a multi-line delta must stay
// inside its frame or clients drop the bare lines.
func writeEvent(w io.Writer, event, payload string) {
	fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(payload, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
}
