package worker

import (
	"context"

	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/service"
)

// StartCacheInvalidationWorker subscribes the stats cache to every employee
// mutation event so cached summaries never outlive a write.
func StartCacheInvalidationWorker(dispatcher events.Dispatcher, cache *service.StatsCache) {
	if dispatcher == nil || cache == nil {
		return
	}

	handler := func(ctx context.Context, _ events.Event) error {
		return cache.Invalidate(ctx)
	}
	for _, eventType := range events.MutationEvents {
		dispatcher.Subscribe(eventType, handler)
	}
}
