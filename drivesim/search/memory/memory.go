// Package memory implements the search index as an in-process
// case-insensitive substring scan. It is the default backend and the
// reference behavior the SQL-backed adapters approximate.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/nonibytes/drivesim/drivesim/search"
)

type Index struct {
	mu   sync.RWMutex
	docs map[key]search.Document
}

type key struct {
	resource search.ResourceType
	id       string
}

func New() *Index {
	return &Index{docs: make(map[key]search.Document)}
}

func (ix *Index) Upsert(ctx context.Context, docs []search.Document) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, d := range docs {
		ix.docs[key{d.Resource, d.ID}] = d
	}
	return nil
}

func (ix *Index) Delete(ctx context.Context, resource search.ResourceType, id string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.docs, key{resource, id})
	return nil
}

func (ix *Index) Search(ctx context.Context, term string, f search.Filter) ([]search.Hit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	needle := strings.ToLower(term)
	var hits []search.Hit
	for _, d := range ix.docs {
		if d.Resource != f.Resource {
			continue
		}
		val, ok := d.Fields[f.ContentType]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(val), needle) {
			hits = append(hits, search.Hit{ID: d.ID, Name: d.Name})
		}
	}
	return hits, nil
}
