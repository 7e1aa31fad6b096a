package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trouze/movienight/internal/dependencies/clock"
	"github.com/trouze/movienight/internal/dependencies/random"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/pubsub"
	"github.com/trouze/movienight/internal/storage"
)

// idAlphabet is the character set for generated message IDs
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultHistoryLimit bounds how many messages Recent returns by default
const DefaultHistoryLimit = 50

// Service handles posting and reading chat messages.
//
// Chat rides the same pub/sub transport as the rotation but carries no
// ordering or conflict semantics; messages broadcast first and persist
// second, so history may briefly trail what connected clients saw.
type Service struct {
	storage   storage.Storage
	publisher pubsub.Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// New creates a new chat Service
func New(storage storage.Storage, publisher pubsub.Publisher, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "chat")),
	}
}

// Post broadcasts and persists a chat message from a member
func (s *Service) Post(ctx context.Context, member *model.Member, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyMessage
	}

	msg := &model.ChatMessage{
		ID:          "msg_" + s.random.String(16, idAlphabet),
		MemberID:    member.ID,
		DisplayName: member.DisplayName,
		AvatarURL:   member.AvatarURL,
		Text:        text,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.publisher.Publish(ctx, model.ChannelChat, model.EventMainChat, msg); err != nil {
		s.logger.Warn("chat broadcast failed",
			slog.String("message_id", msg.ID),
			slog.Any("error", err))
	}

	if err := s.storage.AppendChatMessage(ctx, msg); err != nil {
		s.logger.Error("chat persist failed after broadcast",
			slog.String("message_id", msg.ID),
			slog.Any("error", err))
		return nil, fmt.Errorf("persisting chat message: %w", err)
	}

	return msg, nil
}

// Recent returns up to limit recent messages, oldest first. A
// non-positive limit uses the default.
func (s *Service) Recent(ctx context.Context, limit int) ([]*model.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.storage.RecentChatMessages(ctx, limit)
}
