package messaging

import (
	"fmt"

	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// AuditSubscriber logs every published event as a structured audit
// trail entry.
type AuditSubscriber struct {
	log *logger.Logger
}

// NewAuditSubscriber creates an audit subscriber.
func NewAuditSubscriber(log *logger.Logger) *AuditSubscriber {
	if log == nil {
		log = logger.Default().With(logger.Component("audit"))
	}
	return &AuditSubscriber{log: log}
}

// Attach subscribes the audit handler to every event on the bus.
func (a *AuditSubscriber) Attach(bus shared.EventSubscriber) error {
	return bus.SubscribeAll(a.handle)
}

func (a *AuditSubscriber) handle(event shared.Event) error {
	fields := []logger.Field{
		logger.String("event_type", string(event.EventType())),
		logger.String("aggregate_id", event.AggregateID()),
	}
	for key, value := range event.Payload() {
		fields = append(fields, logger.String(key, fmt.Sprint(value)))
	}
	a.log.Info("event", fields...)
	return nil
}
