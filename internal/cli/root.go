package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/nonibytes/drivesim/internal/cli/commands"
	"github.com/nonibytes/drivesim/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("drivesim", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "files":
		return commands.RunFiles(g, rest)
	case "drives":
		return commands.RunDrives(g, rest)
	case "about":
		return commands.RunAbout(g, rest)
	case "query":
		return commands.RunQuery(g, rest)
	case "reindex":
		return commands.RunReindex(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
