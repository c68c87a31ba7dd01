package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/cache"
	"github.com/spec-kit/stargate-service/internal/events"
	"github.com/spec-kit/stargate-service/internal/observability"
)

// EventSubscribers keeps caches and counters in step with committed roster changes.
type EventSubscribers struct {
	dispatcher events.Dispatcher
	cache      cache.Cache
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewEventSubscribers creates the subscriber set. Nil cache or metrics are skipped.
func NewEventSubscribers(dispatcher events.Dispatcher, c cache.Cache, metrics *observability.Metrics, logger *zap.Logger) *EventSubscribers {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventSubscribers{
		dispatcher: dispatcher,
		cache:      c,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *EventSubscribers) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPersonCreated, n.handlePersonCreated)
	n.dispatcher.Subscribe(events.EventPersonRenamed, n.handlePersonRenamed)
	n.dispatcher.Subscribe(events.EventDutyAssigned, n.handleDutyAssigned)
}

func (n *EventSubscribers) handlePersonCreated(ctx context.Context, event events.Event) error {
	n.logger.Debug("PersonCreated", zap.Int64("person_id", event.PersonID), zap.String("name", event.PersonName))
	if n.metrics != nil {
		n.metrics.PeopleCreated.Inc()
	}
	return n.cache.Delete(ctx, keysFor(event.PersonName)...)
}

func (n *EventSubscribers) handlePersonRenamed(ctx context.Context, event events.Event) error {
	n.logger.Debug("PersonRenamed", zap.Int64("person_id", event.PersonID), zap.Any("payload", event.Payload))
	if n.metrics != nil {
		n.metrics.PeopleRenamed.Inc()
	}
	keys := keysFor(event.PersonName)
	if payload, ok := event.Payload.(events.PersonRenamedPayload); ok {
		keys = append(keys, keysFor(payload.OriginalName)...)
	}
	return n.cache.Delete(ctx, keys...)
}

func (n *EventSubscribers) handleDutyAssigned(ctx context.Context, event events.Event) error {
	n.logger.Debug("DutyAssigned", zap.Int64("person_id", event.PersonID), zap.Any("payload", event.Payload))
	if n.metrics != nil {
		n.metrics.DutiesAssigned.Inc()
		if payload, ok := event.Payload.(events.DutyAssignedPayload); ok && payload.Retirement {
			n.metrics.Retirements.Inc()
		}
	}
	return n.cache.Delete(ctx, keysFor(event.PersonName)...)
}

func keysFor(name string) []string {
	return []string{cache.PersonKey(name), cache.DutiesKey(name)}
}
