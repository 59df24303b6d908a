package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nonibytes/drivesim/drivesim"
	"github.com/nonibytes/drivesim/drivesim/ops"
	"github.com/nonibytes/drivesim/internal/cliopt"
	"github.com/nonibytes/drivesim/internal/cliutil"
)

// RunDrives dispatches the drives subcommands.
func RunDrives(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "usage: drivesim drives <list|get|create|hide|unhide|delete>")
		return 2
	}
	switch argv[0] {
	case "list":
		return runDrivesList(g, argv[1:])
	case "get":
		return runDrivesGet(g, argv[1:])
	case "create":
		return runDrivesCreate(g, argv[1:])
	case "hide":
		return runDrivesSetHidden(g, argv[1:], true)
	case "unhide":
		return runDrivesSetHidden(g, argv[1:], false)
	case "delete":
		return runDrivesDelete(g, argv[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown drives subcommand: %s\n", argv[0])
		return 2
	}
}

func runDrivesList(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("drives list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var where, pageToken string
	var pageSize int
	fs.StringVar(&where, "q", "", "query expression")
	fs.IntVar(&pageSize, "page-size", 0, "results per page")
	fs.StringVar(&pageToken, "page-token", "", "pagination cursor")
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

	page, err := ops.ListDrives(ctx, e.store, e.index, g.User, ops.ListDrivesOptions{
		Query:     where,
		PageSize:  pageSize,
		PageToken: pageToken,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, page)
		return 0
	}
	for _, d := range page.Drives {
		state := ""
		if d.Hidden {
			state = "  (hidden)"
		}
		fmt.Fprintf(os.Stdout, "%s  %s%s\n", d.ID, d.Name, state)
	}
	fmt.Fprintf(os.Stdout, "\n%d drives", len(page.Drives))
	if page.NextPageToken != "" {
		fmt.Fprintf(os.Stdout, " (next: %s)", page.NextPageToken)
	}
	fmt.Fprintln(os.Stdout)
	return 0
}

func runDrivesGet(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("drives get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id string
	fs.StringVar(&id, "id", "", "drive id (required)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if id == "" {
		fmt.Fprintln(os.Stderr, "missing --id")
		return 2
	}

	ctx := context.Background()
	e, err := openEnv(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.close()

	d, err := ops.GetDrive(e.store, g.User, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, d)
	return 0
}

func runDrivesCreate(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("drives create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var name, themeID string
	fs.StringVar(&name, "name", "", "drive name (required)")
	fs.StringVar(&themeID, "theme-id", "", "theme id")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "missing --name")
		return 2
	}

	ctx := context.Background()
	e, err := openEnv(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.close()

	d, err := ops.CreateDrive(ctx, e.store, e.index, g.User, name, themeID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, d)
	return 0
}

func runDrivesSetHidden(g cliopt.GlobalOptions, argv []string, hidden bool) int {
	fs := flag.NewFlagSet("drives hide", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id string
	fs.StringVar(&id, "id", "", "drive id (required)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if id == "" {
		fmt.Fprintln(os.Stderr, "missing --id")
		return 2
	}

	ctx := context.Background()
	e, err := openEnv(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.close()

	var d *drivesim.Drive
	if hidden {
		d, err = ops.HideDrive(ctx, e.store, e.index, g.User, id)
	} else {
		d, err = ops.UnhideDrive(ctx, e.store, e.index, g.User, id)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, d)
	return 0
}

func runDrivesDelete(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("drives delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id string
	fs.StringVar(&id, "id", "", "drive id (required)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if id == "" {
		fmt.Fprintln(os.Stderr, "missing --id")
		return 2
	}

	ctx := context.Background()
	e, err := openEnv(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.close()

	if err := ops.DeleteDrive(ctx, e.store, e.index, g.User, id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "deleted: %s\n", id)
	return 0
}
