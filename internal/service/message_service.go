package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/message-board/internal/domain"
	"github.com/spec-kit/message-board/internal/events"
	"github.com/spec-kit/message-board/internal/persistence"
	"github.com/spec-kit/message-board/internal/repository"
	apperrors "github.com/spec-kit/message-board/pkg/util"
)

const messageListCacheKey = "messages:all"

// MessageService exposes board operations over the message store. The list
// endpoint is served through a Redis read-through cache when Redis is
// reachable; cache failures fall back to the repository.
type MessageService struct {
	messages   repository.MessageRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewMessageService builds the service. cache may be nil.
func NewMessageService(messages repository.MessageRepository, cache *persistence.Redis, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *MessageService {
	return &MessageService{
		messages:   messages,
		cache:      cache,
		cacheTTL:   cacheTTL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create appends a new message authored by the given principal.
func (s *MessageService) Create(ctx context.Context, author, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if len(content) > domain.MaxMessageLength {
		return nil, apperrors.NewValidationError("content too long", map[string]any{"max_length": domain.MaxMessageLength})
	}

	message := &domain.Message{Content: content, Author: author}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.invalidateCache(ctx)
	s.publish(ctx, events.EventMessageCreated, author, events.MessageCreatedPayload{
		MessageID: message.ID,
		Preview:   preview(message.Content),
	})
	return message, nil
}

// List returns all messages in insertion order.
func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.storeList(ctx, messages)
	return messages, nil
}

// Get returns one message by id.
func (s *MessageService) Get(ctx context.Context, id int64) (*domain.Message, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("message", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return message, nil
}

// Delete removes a message by id on behalf of an authenticated principal.
func (s *MessageService) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("message", map[string]any{"id": id})
		}
		return apperrors.NewInternalError(err)
	}

	s.invalidateCache(ctx)
	s.publish(ctx, events.EventMessageDeleted, actor, events.MessageDeletedPayload{MessageID: id})
	return nil
}

func (s *MessageService) cachedList(ctx context.Context) ([]domain.Message, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, messageListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var messages []domain.Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, false
	}
	return messages, true
}

func (s *MessageService) storeList(ctx context.Context, messages []domain.Message) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, messageListCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("message list cache set failed", zap.Error(err))
	}
}

func (s *MessageService) invalidateCache(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, messageListCacheKey).Err(); err != nil {
		s.logger.Debug("message list cache invalidation failed", zap.Error(err))
	}
}

func (s *MessageService) publish(ctx context.Context, eventType events.EventType, actor string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func preview(content string) string {
	const max = 80
	if len(content) <= max {
		return content
	}
	return content[:max]
}
