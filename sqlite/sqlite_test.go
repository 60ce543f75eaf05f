package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docdex/sqlite"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		// Verify tables exist by querying them
		ctx := context.Background()

		var fpCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fingerprints").Scan(&fpCount)
		require.NoError(t, err)

		var buildCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM builds").Scan(&buildCount)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("close is safe without open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Close())
	})
}
