package cliopt

import "flag"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	User string

	StorePath string

	SearchBackend string
	SQLitePath    string
	SQLiteDriver  string
	PostgresDSN   string

	Format string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		User:          "me",
		StorePath:     "drivesim.json",
		SearchBackend: "memory",
		SQLitePath:    "drivesim-search.db",
		SQLiteDriver:  "sqlite",
		Format:        "pretty",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.User, "user", g.User, "user id owning the records")

	fs.StringVar(&g.StorePath, "store", g.StorePath, "store snapshot file path")

	fs.StringVar(&g.SearchBackend, "search-backend", g.SearchBackend, "search backend: memory|sqlite|postgres")
	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite search index file path")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "sqlite driver: sqlite|sqlite3")
	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN for the search index")

	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
}
