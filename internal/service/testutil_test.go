package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/cache"
	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/events"
	"github.com/spec-kit/stargate-service/internal/observability"
	"github.com/spec-kit/stargate-service/internal/persistence"
	"github.com/spec-kit/stargate-service/internal/repository"
	"github.com/spec-kit/stargate-service/internal/repository/sqlite"
	"github.com/spec-kit/stargate-service/internal/service"
)

var fixedNow = time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)

type fixture struct {
	store   repository.Store
	cache   *cache.Memory
	metrics *observability.Metrics
	people  *service.PersonService
	duties  *service.DutyService
}

func newFixture(t *testing.T, matching domain.NameMatching) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, persistence.RunSQLiteMigrations(ctx, db, zap.NewNop()))

	store := sqlite.NewStore(db)
	memCache := cache.NewMemory()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewEventSubscribers(dispatcher, memCache, metrics, zap.NewNop()).RegisterHandlers()

	clock := func() time.Time { return fixedNow }
	return &fixture{
		store:   store,
		cache:   memCache,
		metrics: metrics,
		people: service.NewPersonService(service.PersonDependencies{
			Store: store, Cache: memCache, Dispatcher: dispatcher, Clock: clock,
		}),
		duties: service.NewDutyService(service.DutyDependencies{
			Store: store, Cache: memCache, Dispatcher: dispatcher, NameMatching: matching, Clock: clock,
		}),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
