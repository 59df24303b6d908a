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

// RunFiles dispatches the files subcommands.
func RunFiles(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "usage: drivesim files <list|get|create|update|trash|untrash|delete|empty-trash>")
		return 2
	}
	switch argv[0] {
	case "list":
		return runFilesList(g, argv[1:])
	case "get":
		return runFilesGet(g, argv[1:])
	case "create":
		return runFilesCreate(g, argv[1:])
	case "update":
		return runFilesUpdate(g, argv[1:])
	case "trash":
		return runFilesSetTrashed(g, argv[1:], true)
	case "untrash":
		return runFilesSetTrashed(g, argv[1:], false)
	case "delete":
		return runFilesDelete(g, argv[1:])
	case "empty-trash":
		return runFilesEmptyTrash(g, argv[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown files subcommand: %s\n", argv[0])
		return 2
	}
}

func runFilesList(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("files list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var where, orderBy, pageToken, driveID string
	var pageSize int
	fs.StringVar(&where, "q", "", "query expression")
	fs.StringVar(&orderBy, "order-by", "", "comma-separated sort keys, ' desc' suffix flips")
	fs.IntVar(&pageSize, "page-size", 0, "results per page")
	fs.StringVar(&pageToken, "page-token", "", "pagination cursor")
	fs.StringVar(&driveID, "drive-id", "", "restrict to one shared drive")
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

	page, err := ops.ListFiles(ctx, e.store, e.index, g.User, ops.ListFilesOptions{
		Query:     where,
		OrderBy:   orderBy,
		PageSize:  pageSize,
		PageToken: pageToken,
		DriveID:   driveID,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, page)
		return 0
	}
	for _, f := range page.Files {
		fmt.Fprintf(os.Stdout, "%s  %s\n", f.ID, f.Name)
	}
	fmt.Fprintf(os.Stdout, "\n%d files", len(page.Files))
	if page.NextPageToken != "" {
		fmt.Fprintf(os.Stdout, " (next: %s)", page.NextPageToken)
	}
	fmt.Fprintln(os.Stdout)
	return 0
}

func runFilesGet(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("files get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id string
	fs.StringVar(&id, "id", "", "file id (required)")
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

	f, err := ops.GetFile(e.store, g.User, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, f)
	return 0
}

func runFilesCreate(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("files create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var name, mimeType, description, parent, driveID, content string
	var starred, folder bool
	fs.StringVar(&name, "name", "", "file name (required)")
	fs.StringVar(&mimeType, "mime-type", "", "mime type")
	fs.StringVar(&description, "description", "", "description")
	fs.StringVar(&parent, "parent", "", "parent folder or drive id")
	fs.StringVar(&driveID, "drive-id", "", "shared drive id")
	fs.StringVar(&content, "content", "", "inline text content")
	fs.BoolVar(&starred, "starred", false, "star the new file")
	fs.BoolVar(&folder, "folder", false, "create a folder")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "missing --name")
		return 2
	}
	if folder {
		mimeType = drivesim.FolderMimeType
	}

	ctx := context.Background()
	e, err := openEnv(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer e.close()

	req := ops.CreateFileRequest{
		Name:        name,
		MimeType:    mimeType,
		Description: description,
		DriveID:     driveID,
		Starred:     starred,
	}
	if parent != "" {
		req.Parents = []string{parent}
	}
	if content != "" {
		req.Content = &drivesim.Content{Data: content}
	}

	f, err := ops.CreateFile(ctx, e.store, e.index, g.User, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, f)
	return 0
}

func runFilesUpdate(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("files update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id, name, description, content string
	fs.StringVar(&id, "id", "", "file id (required)")
	fs.StringVar(&name, "name", "", "new name")
	fs.StringVar(&description, "description", "", "new description")
	fs.StringVar(&content, "content", "", "new inline text content")
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

	var req ops.UpdateFileRequest
	if name != "" {
		req.Name = &name
	}
	if description != "" {
		req.Description = &description
	}
	if content != "" {
		req.Content = &drivesim.Content{Data: content}
	}

	f, err := ops.UpdateFile(ctx, e.store, e.index, g.User, id, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, f)
	return 0
}

func runFilesSetTrashed(g cliopt.GlobalOptions, argv []string, trashed bool) int {
	fs := flag.NewFlagSet("files trash", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id string
	fs.StringVar(&id, "id", "", "file id (required)")
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

	var f *drivesim.File
	if trashed {
		f, err = ops.TrashFile(ctx, e.store, e.index, g.User, id)
	} else {
		f, err = ops.UntrashFile(ctx, e.store, e.index, g.User, id)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, f)
	return 0
}

func runFilesDelete(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("files delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id string
	fs.StringVar(&id, "id", "", "file id (required)")
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

	if err := ops.DeleteFile(ctx, e.store, e.index, g.User, id); err != nil {
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

func runFilesEmptyTrash(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("files empty-trash", flag.ContinueOnError)
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

	if err := ops.EmptyTrash(ctx, e.store, e.index, g.User); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := e.save(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, "trash emptied")
	return 0
}
