package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nonibytes/drivesim/drivesim/ops"
	"github.com/nonibytes/drivesim/drivesim/query"
	"github.com/nonibytes/drivesim/internal/cliopt"
	"github.com/nonibytes/drivesim/internal/cliutil"
)

// RunAbout prints the user's account metadata and quota.
func RunAbout(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("about", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := context.Background()
	e, err := openEnv(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.close()

	about := ops.About(e.store, g.User)
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, about)
	return 0
}

// RunQuery compiles a query expression and prints its postfix form. Useful
// for debugging why a filter matches or rejects.
func RunQuery(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var where string
	fs.StringVar(&where, "q", "", "query expression (required)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if where == "" {
		fmt.Fprintln(os.Stderr, "missing -q")
		return 2
	}

	expr, err := query.Parse(where)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, node := range expr {
		fmt.Fprintln(os.Stdout, formatNode(node))
	}
	return 0
}

func formatNode(node query.Node) string {
	switch n := node.(type) {
	case query.Condition:
		var sb strings.Builder
		if n.Negated {
			sb.WriteString("not ")
		}
		fmt.Fprintf(&sb, "%s %s %q", n.Field, n.Op, n.Value)
		if n.PhraseMatch {
			sb.WriteString(" (phrase)")
		}
		return sb.String()
	case query.Logical:
		if n.Op == query.LogicalAnd {
			return "and"
		}
		return "or"
	default:
		return fmt.Sprintf("%#v", node)
	}
}

// RunReindex rebuilds the search backend from the store snapshot.
func RunReindex(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("reindex", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	// openEnv already reindexes after loading the snapshot.
	ctx := context.Background()
	e, err := openEnv(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.close()

	fmt.Fprintln(os.Stdout, "reindexed")
	return 0
}
