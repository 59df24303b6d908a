package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/nonibytes/drivesim/drivesim"
	"github.com/nonibytes/drivesim/drivesim/search"
	"github.com/nonibytes/drivesim/drivesim/search/memory"
	"github.com/nonibytes/drivesim/drivesim/search/postgres"
	"github.com/nonibytes/drivesim/drivesim/search/sqlite"
	"github.com/nonibytes/drivesim/internal/cliopt"
)

// env bundles the loaded store and the opened search backend for one
// command invocation.
type env struct {
	store *drivesim.Store
	index search.Index
	close func() error
}

// openEnv loads the store snapshot (a missing file starts empty), opens the
// configured search backend and seeds it from the store.
func openEnv(ctx context.Context, g cliopt.GlobalOptions) (*env, error) {
	store := drivesim.NewStore()
	if _, err := os.Stat(g.StorePath); err == nil {
		if err := store.Load(g.StorePath); err != nil {
			return nil, err
		}
	}

	var (
		idx     search.Index
		closeFn = func() error { return nil }
	)
	switch g.SearchBackend {
	case "sqlite":
		a, err := sqlite.Open(ctx, g.SQLitePath, g.SQLiteDriver)
		if err != nil {
			return nil, fmt.Errorf("open sqlite search index: %w", err)
		}
		idx, closeFn = a, a.Close
	case "postgres", "pg":
		a, err := postgres.Open(ctx, g.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres search index: %w", err)
		}
		idx, closeFn = a, a.Close
	default:
		idx = memory.New()
	}

	if err := store.Reindex(ctx, idx); err != nil {
		closeFn()
		return nil, fmt.Errorf("seed search index: %w", err)
	}
	return &env{store: store, index: idx, close: closeFn}, nil
}

func (e *env) save(g cliopt.GlobalOptions) error {
	return e.store.Save(g.StorePath)
}
