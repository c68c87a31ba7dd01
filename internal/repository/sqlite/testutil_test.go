package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/stargate-service/internal/persistence"
	"github.com/spec-kit/stargate-service/internal/repository"
	"github.com/spec-kit/stargate-service/internal/repository/sqlite"
)

// setupStore opens a migrated in-memory database. The seed rows (John Doe with one open duty,
// Jane Doe without duties) are present.
func setupStore(t *testing.T) repository.Store {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, persistence.RunSQLiteMigrations(ctx, db, zap.NewNop()))
	return sqlite.NewStore(db)
}
