//go:build integration

// Package repotest opens throwaway MongoDB databases for integration tests outside the
// repository package.
package repotest

import (
	"context"
	"testing"

	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/guttosm/bbs-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

// NewDatabase connects to a fresh database named after t on the server at uri.
// The database is dropped and the client closed when t finishes.
func NewDatabase(t *testing.T, uri string) *repository.MongoDB {
	t.Helper()

	db, err := repository.NewMongoDB(uri, testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}
