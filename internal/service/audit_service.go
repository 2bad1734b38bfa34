package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/message-board/internal/events"
)

// AuditService records domain events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handleEvent)
	a.dispatcher.Subscribe(events.EventMessageCreated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventMessageDeleted, a.handleEvent)
}

func (a *AuditService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("actor", event.Actor),
		zap.Any("payload", event.Payload))
	return nil
}
