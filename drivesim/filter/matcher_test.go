package filter

import (
	"context"
	"testing"

	"github.com/nonibytes/drivesim/drivesim/query"
	"github.com/nonibytes/drivesim/drivesim/search"
	"github.com/nonibytes/drivesim/drivesim/search/memory"
)

type fakeRecord struct {
	id     string
	fields map[string]any
}

func (r fakeRecord) RecordID() string { return r.id }

func (r fakeRecord) Field(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// plainMatcher routes every field through the in-memory comparison paths.
func plainMatcher() *Matcher {
	return &Matcher{}
}

func mustMatch(t *testing.T, m *Matcher, rec Record, cond query.Condition) bool {
	t.Helper()
	ok, err := m.Match(context.Background(), rec, cond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ok
}

func TestMatchAbsentFieldFails(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{}}
	cond := query.Condition{Field: "description", Op: query.OpContains, Value: "x"}
	if mustMatch(t, plainMatcher(), rec, cond) {
		t.Error("condition on absent field must fail")
	}
}

func TestMatchDefaultContains(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"description": "Quarterly Budget Review"}}
	cond := query.Condition{Field: "description", Op: query.OpContains, Value: "budget"}
	if !mustMatch(t, plainMatcher(), rec, cond) {
		t.Error("expected case-insensitive substring match")
	}
}

func TestMatchNumericOrdering(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"size": "2048"}}
	if !mustMatch(t, plainMatcher(), rec, query.Condition{Field: "size", Op: query.OpGt, Value: "500"}) {
		t.Error("2048 > 500 should match")
	}
	if mustMatch(t, plainMatcher(), rec, query.Condition{Field: "size", Op: query.OpLt, Value: "500"}) {
		t.Error("2048 < 500 should not match")
	}
}

func TestMatchNumericOrderingNonNumeric(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"size": "large"}}
	if mustMatch(t, plainMatcher(), rec, query.Condition{Field: "size", Op: query.OpGt, Value: "500"}) {
		t.Error("non-numeric value must fail ordering comparison")
	}
}

func TestMatchBoolField(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"trashed": false}}
	if !mustMatch(t, plainMatcher(), rec, query.Condition{Field: "trashed", Op: query.OpEq, Value: "false"}) {
		t.Error("trashed = false should match")
	}
	if !mustMatch(t, plainMatcher(), rec, query.Condition{Field: "trashed", Op: query.OpNe, Value: "true"}) {
		t.Error("trashed != true should match")
	}
}

func TestMatchTemporalOrdering(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"createdTime": "2021-06-01T10:00:00Z"}}
	if !mustMatch(t, plainMatcher(), rec, query.Condition{Field: "createdTime", Op: query.OpGt, Value: "2020-01-01"}) {
		t.Error("2021 > 2020 should match")
	}
	if mustMatch(t, plainMatcher(), rec, query.Condition{Field: "createdTime", Op: query.OpLt, Value: "2020-01-01"}) {
		t.Error("2021 < 2020 should not match")
	}
}

func TestMatchTemporalUnparsable(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"createdTime": "not a date"}}
	if mustMatch(t, plainMatcher(), rec, query.Condition{Field: "createdTime", Op: query.OpGt, Value: "2020-01-01"}) {
		t.Error("unparsable timestamp must fail the comparison")
	}
}

func TestMatchFullTextWholeToken(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{
		"name":        "Annual Report",
		"description": "",
		"content":     "totals for the year",
	}}
	m := plainMatcher()
	if !mustMatch(t, m, rec, query.Condition{Field: "fullText", Op: query.OpContains, Value: "report"}) {
		t.Error("whole token should match case-insensitively")
	}
	if mustMatch(t, m, rec, query.Condition{Field: "fullText", Op: query.OpContains, Value: "repo"}) {
		t.Error("partial token must not match fullText")
	}
	if !mustMatch(t, m, rec, query.Condition{Field: "fullText", Op: query.OpContains, Value: "totals"}) {
		t.Error("content tokens should be searched")
	}
}

func TestMatchFullTextAbsentFields(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{}}
	cond := query.Condition{Field: "fullText", Op: query.OpContains, Value: "report"}
	if mustMatch(t, plainMatcher(), rec, cond) {
		t.Error("record with no text should not match")
	}
}

func TestMatchPhraseNormalizesRecordSide(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"name": "2024_Annual-Report(final)"}}
	cond := query.Condition{
		Field:       "name",
		Op:          query.OpContains,
		Value:       "Annual Report",
		PhraseMatch: true,
	}
	if !mustMatch(t, plainMatcher(), rec, cond) {
		t.Error("phrase should match after both sides are normalized")
	}
}

func TestMatchMembershipIn(t *testing.T) {
	rec := fakeRecord{id: "f1", fields: map[string]any{"owners": []string{"alice@example.com", "bob@example.com"}}}
	if !mustMatch(t, plainMatcher(), rec, query.Condition{Field: "owners", Op: query.OpIn, Value: "alice@example.com"}) {
		t.Error("expected membership match")
	}
	if mustMatch(t, plainMatcher(), rec, query.Condition{Field: "owners", Op: query.OpIn, Value: "carol@example.com"}) {
		t.Error("non-member must not match")
	}
}

func indexedMatcher(t *testing.T, docs ...search.Document) *Matcher {
	t.Helper()
	idx := memory.New()
	if err := idx.Upsert(context.Background(), docs); err != nil {
		t.Fatalf("seed index: %v", err)
	}
	return &Matcher{Index: idx, Resource: search.ResourceFile}
}

func fileDoc(id, name string) search.Document {
	return search.Document{
		ID:       id,
		Name:     name,
		Resource: search.ResourceFile,
		Fields: map[string]string{
			"id":   id,
			"name": name,
		},
	}
}

func TestMatchIndexedNamePrefix(t *testing.T) {
	m := indexedMatcher(t, fileDoc("f1", "Quarterly Report"), fileDoc("f2", "Notes"))
	rec := fakeRecord{id: "f1", fields: map[string]any{"name": "Quarterly Report"}}

	if !mustMatch(t, m, rec, query.Condition{Field: "name", Op: query.OpContains, Value: "rep"}) {
		t.Error("single-word value should prefix-match a name token")
	}
	// "port" is inside "Report" but prefixes no token.
	if mustMatch(t, m, rec, query.Condition{Field: "name", Op: query.OpContains, Value: "port"}) {
		t.Error("mid-token substring must not match name contains")
	}
}

func TestMatchIndexedNameMultiWord(t *testing.T) {
	m := indexedMatcher(t, fileDoc("f1", "Quarterly Report 2024"))
	rec := fakeRecord{id: "f1", fields: map[string]any{"name": "Quarterly Report 2024"}}

	if !mustMatch(t, m, rec, query.Condition{Field: "name", Op: query.OpContains, Value: "quarterly rep"}) {
		t.Error("multi-word value should substring-match the name")
	}
}

func TestMatchIndexedEquality(t *testing.T) {
	m := indexedMatcher(t, fileDoc("f1", "Notes"), fileDoc("f2", "Notes Archive"))
	rec := fakeRecord{id: "f2", fields: map[string]any{"name": "Notes Archive"}}

	if mustMatch(t, m, rec, query.Condition{Field: "name", Op: query.OpEq, Value: "Notes"}) {
		t.Error("equality requires the full value, not a candidate hit")
	}
	if !mustMatch(t, m, rec, query.Condition{Field: "name", Op: query.OpEq, Value: "notes archive"}) {
		t.Error("equality is case-insensitive on indexed fields")
	}
}

func TestMatchIndexedNotEquals(t *testing.T) {
	m := indexedMatcher(t, fileDoc("f1", "Notes"))
	rec := fakeRecord{id: "f2", fields: map[string]any{"name": "Other"}}

	if !mustMatch(t, m, rec, query.Condition{Field: "name", Op: query.OpNe, Value: "Notes"}) {
		t.Error("record outside the candidate set satisfies !=")
	}
}
