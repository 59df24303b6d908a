// Package search defines the index collaborator the query engine delegates
// indexed-field conditions to, plus adapters backed by memory, SQLite FTS5
// and Postgres.
package search

import "context"

// ResourceType scopes an index lookup to one record kind.
type ResourceType string

const (
	ResourceFile  ResourceType = "file"
	ResourceDrive ResourceType = "drive"
)

// Filter scopes a search to one resource kind and one field.
type Filter struct {
	Resource    ResourceType
	ContentType string
}

// Hit is one candidate record returned by an index lookup. Name is carried
// alongside the id because name-contains matching post-filters candidates
// by their display name.
type Hit struct {
	ID   string
	Name string
}

// Document is the indexable projection of one record: the field values the
// engine may delegate lookups for, keyed by field name.
type Document struct {
	ID       string
	Name     string
	Resource ResourceType
	Fields   map[string]string
}

// Index is the external search collaborator. Search returns the candidate
// records whose indexed field matches the term; the caller decides what a
// match means per operator.
type Index interface {
	Search(ctx context.Context, term string, f Filter) ([]Hit, error)
	Upsert(ctx context.Context, docs []Document) error
	Delete(ctx context.Context, resource ResourceType, id string) error
}
