// Package chat provides the application layer for the streaming chef
// chat: a cancellable sequence of text deltas with a single terminal
// completion or error event.
package chat

import (
	"context"

	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/inbound"
	"github.com/nourishly/v1/internal/ports/outbound"
	"github.com/nourishly/v1/pkg/errors"
	"go.uber.org/zap"
)

// ChatService implements the streaming chat use case
type ChatService struct {
	ai     outbound.AIService
	logger *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(ai outbound.AIService, logger *zap.Logger) inbound.ChatService {
	return &ChatService{
		ai:     ai,
		logger: logger.Named("chat-service"),
	}
}

// Stream sends a message with its conversation history and returns the
// delta channel. The channel closes after the terminal event; cancelling
// the context abandons the stream and any late result is discarded.
func (s *ChatService) Stream(ctx context.Context, cmd inbound.ChatCommand) (<-chan outbound.ChatDelta, error) {
	if cmd.Message == "" {
		return nil, errors.NewValidationError("chat message must not be empty")
	}

	lang := cmd.Language
	if lang == "" {
		lang = profile.LanguageEnglish
	}

	deltas, err := s.ai.StreamChat(ctx, sanitizeHistory(cmd.History), cmd.Message, lang)
	if err != nil {
		return nil, errors.NewExternalServiceError("chat", err)
	}

	s.logger.Debug("Chat stream opened",
		zap.Int("history_turns", len(cmd.History)),
	)
	return deltas, nil
}

// sanitizeHistory drops a leading model turn so the history always
// starts with a user message, which the backend requires.
func sanitizeHistory(history []outbound.ChatTurn) []outbound.ChatTurn {
	for len(history) > 0 && history[0].Role != "user" {
		history = history[1:]
	}
	return history
}
