package worker

import (
	"github.com/spec-kit/stargate-service/internal/service"
)

// StartEventSubscribers registers the post-commit event handlers.
func StartEventSubscribers(subscribers *service.EventSubscribers) {
	if subscribers == nil {
		return
	}
	subscribers.RegisterHandlers()
}
