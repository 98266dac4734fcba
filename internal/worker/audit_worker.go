package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/edusekai/platform-api/internal/events"
)

// auditedEvents are the event types recorded to the audit log stream.
var auditedEvents = []events.EventType{
	events.EventUserLoggedIn,
	events.EventUserLoggedOut,
	events.EventPasswordChanged,
	events.EventCredentialsIssued,
	events.EventPaymentCompleted,
	events.EventOrganizationCreated,
	events.EventStudentEnrolled,
	events.EventStaffMemberOnboarded,
}

// StartAuditWorker subscribes a handler that writes structured audit entries
// for security-relevant events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}

	audit := logger.Named("audit")
	record := func(ctx context.Context, event events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("organization_id", event.OrganizationID),
			zap.Time("occurred_at", event.Timestamp),
		}
		if event.UserID != nil {
			fields = append(fields, zap.String("user_id", *event.UserID))
		}
		if event.Payload != nil {
			fields = append(fields, zap.Any("payload", event.Payload))
		}
		audit.Info("audit event", fields...)
		return nil
	}

	for _, eventType := range auditedEvents {
		dispatcher.Subscribe(eventType, record)
	}
}
