package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/nonibytes/drivesim/drivesim/search"
)

func openTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "search.db")
	a, err := Open(context.Background(), path, "sqlite")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestUpsertAndSearch(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()

	docs := []search.Document{
		{
			ID:       "f1",
			Name:     "Quarterly Report",
			Resource: search.ResourceFile,
			Fields:   map[string]string{"name": "Quarterly Report", "description": "Q3 totals"},
		},
		{
			ID:       "f2",
			Name:     "Notes",
			Resource: search.ResourceFile,
			Fields:   map[string]string{"name": "Notes"},
		},
	}
	if err := a.Upsert(ctx, docs); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	hits, err := a.Search(ctx, "quarterly", search.Filter{
		Resource:    search.ResourceFile,
		ContentType: "name",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "f1" {
		t.Errorf("unexpected hits: %v", hits)
	}

	// Prefix match via the trailing *.
	hits, err = a.Search(ctx, "quart", search.Filter{
		Resource:    search.ResourceFile,
		ContentType: "name",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected prefix match, got %v", hits)
	}

	// The field filter keeps description rows out of name queries.
	hits, err = a.Search(ctx, "totals", search.Filter{
		Resource:    search.ResourceFile,
		ContentType: "name",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("description row leaked into name search: %v", hits)
	}
}

func TestUpsertReplacesRows(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()

	doc := search.Document{
		ID:       "f1",
		Name:     "Old Name",
		Resource: search.ResourceFile,
		Fields:   map[string]string{"name": "Old Name"},
	}
	if err := a.Upsert(ctx, []search.Document{doc}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	doc.Name = "New Name"
	doc.Fields["name"] = "New Name"
	if err := a.Upsert(ctx, []search.Document{doc}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	hits, err := a.Search(ctx, "old", search.Filter{Resource: search.ResourceFile, ContentType: "name"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("stale rows survived upsert: %v", hits)
	}
}

func TestDeleteRemovesAllFields(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()

	doc := search.Document{
		ID:       "d1",
		Name:     "Team Drive",
		Resource: search.ResourceDrive,
		Fields:   map[string]string{"name": "Team Drive", "themeId": "theme1"},
	}
	if err := a.Upsert(ctx, []search.Document{doc}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := a.Delete(ctx, search.ResourceDrive, "d1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, field := range []string{"name", "themeId"} {
		hits, err := a.Search(ctx, "team", search.Filter{Resource: search.ResourceDrive, ContentType: field})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("field %s still searchable after delete", field)
		}
	}
}

func TestSearchQuotesTerm(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()

	doc := search.Document{
		ID:       "f1",
		Name:     `He said "hi"`,
		Resource: search.ResourceFile,
		Fields:   map[string]string{"name": `He said "hi"`},
	}
	if err := a.Upsert(ctx, []search.Document{doc}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A term with embedded quotes must not break the MATCH syntax.
	if _, err := a.Search(ctx, `said "hi"`, search.Filter{
		Resource:    search.ResourceFile,
		ContentType: "name",
	}); err != nil {
		t.Fatalf("quoted term errored: %v", err)
	}
}
