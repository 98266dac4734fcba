package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/edusekai/platform-api/internal/events"
	"github.com/edusekai/platform-api/internal/session"
)

// StartSessionWorker subscribes handlers that keep the Redis-backed session
// cache consistent with authentication events.
func StartSessionWorker(dispatcher events.Dispatcher, sessions *session.Store, logger *zap.Logger) {
	if dispatcher == nil || sessions == nil {
		return
	}

	invalidate := func(ctx context.Context, event events.Event) error {
		if event.UserID == nil {
			return nil
		}
		sessions.Invalidate(ctx, event.OrganizationID, *event.UserID)
		return nil
	}

	dispatcher.Subscribe(events.EventPasswordChanged, invalidate)
	dispatcher.Subscribe(events.EventUserLoggedOut, invalidate)
	dispatcher.Subscribe(events.EventActiveRoleSwitched, invalidate)

	dispatcher.Subscribe(events.EventUserLoggedOut, func(ctx context.Context, event events.Event) error {
		if event.UserID == nil {
			return nil
		}
		return sessions.ClearActiveRole(ctx, *event.UserID)
	})

	if logger != nil {
		logger.Info("session worker started")
	}
}
