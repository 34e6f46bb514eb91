package eventlog

import (
	"github.com/tourops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Publisher drains committed domain events into the process log. Pending
// events are cleared once written, so a later save on the same aggregate
// cannot emit them twice.
type Publisher struct {
	log *zap.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(log *zap.Logger) *Publisher {
	return &Publisher{log: log}
}

// Publish logs every pending event on the aggregate and clears them.
// Call after the repository write succeeds; events raised by a mutation
// that failed to persist must not be published.
func (p *Publisher) Publish(agg shared.AggregateRoot) {
	for _, event := range agg.GetDomainEvents() {
		p.log.Info("domain event",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
	agg.ClearDomainEvents()
}
