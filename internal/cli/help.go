package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `drivesim — Drive-style file store with a query expression engine

USAGE
  drivesim [global flags] <command> [args]

GLOBAL FLAGS
  --user <id>
  --store <snapshot.json>
  --search-backend memory|sqlite|postgres
  --sqlite-path <file.db>
  --sqlite-driver sqlite|sqlite3
  --pg-dsn <dsn>
  --format pretty|json

COMMANDS
  files <list|get|create|update|trash|untrash|delete|empty-trash>
  drives <list|get|create|hide|unhide|delete>
  about
  query
  reindex

Run "drivesim <command> --help" for details.`)
}
