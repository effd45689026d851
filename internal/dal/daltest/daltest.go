// Package daltest provides a migrated throwaway SQLite database for tests.
package daltest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/easykanban/easykanban/internal/dal"
)

// Open returns a DB backed by a fresh SQLite file in t.TempDir with every
// migration applied. The DB is closed when the test ends.
func Open(t testing.TB) *dal.DB {
	t.Helper()
	d, err := dal.Open(context.Background(), dal.Options{
		Dialect: dal.SQLite,
		DSN:     filepath.Join(t.TempDir(), "kanban.db"),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.Migrate("up"); err != nil {
		t.Fatalf("migrating sqlite: %v", err)
	}
	return d
}
