// Package sqlite backs the search index with an FTS5 virtual table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nonibytes/drivesim/drivesim/search"
)

// Adapter holds one FTS5-backed index. DriverName selects the database/sql
// driver: "sqlite" (modernc.org/sqlite) or "sqlite3" (mattn/go-sqlite3).
type Adapter struct {
	db *sql.DB
}

const ddl = `CREATE VIRTUAL TABLE IF NOT EXISTS search USING fts5(
	body,
	record_id UNINDEXED,
	name UNINDEXED,
	resource UNINDEXED,
	field UNINDEXED,
	tokenize='unicode61'
)`

func Open(ctx context.Context, path, driverName string) (*Adapter, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn = dsn + "?_busy_timeout=5000"
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create fts: %w", err)
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	return &Adapter{db: db}, nil
}

func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) Upsert(ctx context.Context, docs []search.Document) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range docs {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM search WHERE record_id = ? AND resource = ?", d.ID, string(d.Resource)); err != nil {
			return fmt.Errorf("delete fts rows: %w", err)
		}
		for field, val := range d.Fields {
			if val == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO search(body, record_id, name, resource, field) VALUES(?, ?, ?, ?, ?)",
				val, d.ID, d.Name, string(d.Resource), field); err != nil {
				return fmt.Errorf("insert fts row: %w", err)
			}
		}
	}
	return tx.Commit()
}

func (a *Adapter) Delete(ctx context.Context, resource search.ResourceType, id string) error {
	_, err := a.db.ExecContext(ctx,
		"DELETE FROM search WHERE record_id = ? AND resource = ?", id, string(resource))
	return err
}

func (a *Adapter) Search(ctx context.Context, term string, f search.Filter) ([]search.Hit, error) {
	match := "body:" + quoteFTSTerm(term) + "*"
	rows, err := a.db.QueryContext(ctx,
		"SELECT record_id, name FROM search WHERE search MATCH ? AND resource = ? AND field = ?",
		match, string(f.Resource), f.ContentType)
	if err != nil {
		return nil, fmt.Errorf("fts search: %w", err)
	}
	defer rows.Close()

	var hits []search.Hit
	for rows.Next() {
		var h search.Hit
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func quoteFTSTerm(term string) string {
	esc := strings.ReplaceAll(term, `"`, `""`)
	return `"` + esc + `"`
}
