package ops

import (
	"context"
	"testing"

	"github.com/nonibytes/drivesim/drivesim"
	"github.com/nonibytes/drivesim/drivesim/search"
	"github.com/nonibytes/drivesim/drivesim/search/memory"
)

func seedFiles(t *testing.T, files ...*drivesim.File) (*drivesim.Store, search.Index) {
	t.Helper()
	store := drivesim.NewStore()
	store.EnsureUser("u")
	for _, f := range files {
		store.AddFile("u", f)
	}
	idx := memory.New()
	if err := store.Reindex(context.Background(), idx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	return store, idx
}

func TestListFilesQuery(t *testing.T) {
	store, idx := seedFiles(t,
		&drivesim.File{ID: "f1", Name: "Quarterly Report"},
		&drivesim.File{ID: "f2", Name: "Notes"},
	)

	page, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{
		Query: "name contains 'rep'",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Files) != 1 || page.Files[0].ID != "f1" {
		t.Errorf("unexpected result: %v", page.Files)
	}
	if page.Kind != "drive#fileList" {
		t.Errorf("unexpected kind: %s", page.Kind)
	}
}

func TestListFilesTrashedFilter(t *testing.T) {
	store, idx := seedFiles(t,
		&drivesim.File{ID: "f1", Name: "kept"},
		&drivesim.File{ID: "f2", Name: "binned", Trashed: true},
	)

	page, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{
		Query: "trashed = false",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Files) != 1 || page.Files[0].ID != "f1" {
		t.Errorf("unexpected result: %v", page.Files)
	}
}

func TestListFilesPagination(t *testing.T) {
	store, idx := seedFiles(t,
		&drivesim.File{ID: "f1", Name: "a"},
		&drivesim.File{ID: "f2", Name: "b"},
		&drivesim.File{ID: "f3", Name: "c"},
	)

	first, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Files) != 2 || first.NextPageToken == "" {
		t.Fatalf("unexpected first page: %d files, token %q", len(first.Files), first.NextPageToken)
	}

	second, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{
		PageSize:  2,
		PageToken: first.NextPageToken,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Files) != 1 || second.Files[0].ID != "f3" {
		t.Errorf("unexpected second page: %v", second.Files)
	}
	if second.NextPageToken != "" {
		t.Errorf("last page must not carry a token, got %q", second.NextPageToken)
	}
}

func TestListFilesInvalidPageToken(t *testing.T) {
	store, idx := seedFiles(t, &drivesim.File{ID: "f1", Name: "a"})

	page, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{
		PageToken: "not-base64!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Files) != 1 {
		t.Errorf("invalid token should restart from offset zero, got %d files", len(page.Files))
	}
}

func TestListFilesOrderBy(t *testing.T) {
	store, idx := seedFiles(t,
		&drivesim.File{ID: "f1", Name: "banana"},
		&drivesim.File{ID: "f2", Name: "apple"},
		&drivesim.File{ID: "f3", Name: "cherry"},
	)

	page, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{OrderBy: "name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := []string{page.Files[0].Name, page.Files[1].Name, page.Files[2].Name}
	if got[0] != "apple" || got[1] != "banana" || got[2] != "cherry" {
		t.Errorf("unexpected order: %v", got)
	}

	page, err = ListFiles(context.Background(), store, idx, "u", ListFilesOptions{OrderBy: "name desc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Files[0].Name != "cherry" {
		t.Errorf("desc order broken: %s first", page.Files[0].Name)
	}
}

func TestListFilesOrderByFolderFirst(t *testing.T) {
	store, idx := seedFiles(t,
		&drivesim.File{ID: "f1", Name: "doc", MimeType: "text/plain"},
		&drivesim.File{ID: "f2", Name: "dir", MimeType: drivesim.FolderMimeType},
	)

	page, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{OrderBy: "folder desc,name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Files[0].ID != "f2" {
		t.Errorf("expected folder first, got %s", page.Files[0].ID)
	}
}

func TestListFilesDriveScope(t *testing.T) {
	store, idx := seedFiles(t,
		&drivesim.File{ID: "f1", Name: "in drive", DriveID: "d1"},
		&drivesim.File{ID: "f2", Name: "personal"},
	)

	page, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{DriveID: "d1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Files) != 1 || page.Files[0].ID != "f1" {
		t.Errorf("unexpected result: %v", page.Files)
	}
}

func TestListFilesPageSizeTooLarge(t *testing.T) {
	store, idx := seedFiles(t)
	_, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{PageSize: 1001})
	if !drivesim.IsKind(err, drivesim.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListFilesUnknownUser(t *testing.T) {
	store, idx := seedFiles(t)
	_, err := ListFiles(context.Background(), store, idx, "nobody", ListFilesOptions{})
	if !drivesim.IsKind(err, drivesim.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListFilesBadQuery(t *testing.T) {
	store, idx := seedFiles(t, &drivesim.File{ID: "f1", Name: "a"})
	_, err := ListFiles(context.Background(), store, idx, "u", ListFilesOptions{
		Query: "name = 'unbalanced",
	})
	if !drivesim.IsKind(err, drivesim.ErrInvalidQuery) {
		t.Fatalf("expected invalid query error, got %v", err)
	}
}

func TestListDrivesQuery(t *testing.T) {
	store := drivesim.NewStore()
	store.EnsureUser("u")
	store.AddDrive("u", &drivesim.Drive{ID: "d1", Name: "Marketing", Hidden: true})
	store.AddDrive("u", &drivesim.Drive{ID: "d2", Name: "Engineering"})
	idx := memory.New()
	if err := store.Reindex(context.Background(), idx); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	page, err := ListDrives(context.Background(), store, idx, "u", ListDrivesOptions{
		Query: "hidden = true",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Drives) != 1 || page.Drives[0].ID != "d1" {
		t.Errorf("unexpected result: %v", page.Drives)
	}
	if page.Kind != "drive#driveList" {
		t.Errorf("unexpected kind: %s", page.Kind)
	}
}

func TestListDrivesPageSizeOutOfRange(t *testing.T) {
	store := drivesim.NewStore()
	store.EnsureUser("u")
	idx := memory.New()

	if _, err := ListDrives(context.Background(), store, idx, "u", ListDrivesOptions{PageSize: 101}); !drivesim.IsKind(err, drivesim.ErrValidation) {
		t.Errorf("expected validation error for 101, got %v", err)
	}
	if _, err := ListDrives(context.Background(), store, idx, "u", ListDrivesOptions{PageSize: -1}); !drivesim.IsKind(err, drivesim.ErrValidation) {
		t.Errorf("expected validation error for -1, got %v", err)
	}
}
