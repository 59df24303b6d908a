// Package postgres backs the search index with a Postgres table queried
// through ILIKE, connected via the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/nonibytes/drivesim/drivesim/search"
)

type Adapter struct {
	db *sql.DB
}

const ddl = `CREATE TABLE IF NOT EXISTS search_docs (
	record_id TEXT NOT NULL,
	name      TEXT NOT NULL DEFAULT '',
	resource  TEXT NOT NULL,
	field     TEXT NOT NULL,
	body      TEXT NOT NULL,
	PRIMARY KEY (resource, record_id, field)
)`

func Open(ctx context.Context, dsn string) (*Adapter, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create search_docs: %w", err)
	}
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
			"DELETE FROM search_docs WHERE record_id = $1 AND resource = $2", d.ID, string(d.Resource)); err != nil {
			return fmt.Errorf("delete search rows: %w", err)
		}
		for field, val := range d.Fields {
			if val == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO search_docs(record_id, name, resource, field, body) VALUES($1, $2, $3, $4, $5)",
				d.ID, d.Name, string(d.Resource), field, val); err != nil {
				return fmt.Errorf("insert search row: %w", err)
			}
		}
	}
	return tx.Commit()
}

func (a *Adapter) Delete(ctx context.Context, resource search.ResourceType, id string) error {
	_, err := a.db.ExecContext(ctx,
		"DELETE FROM search_docs WHERE record_id = $1 AND resource = $2", id, string(resource))
	return err
}

func (a *Adapter) Search(ctx context.Context, term string, f search.Filter) ([]search.Hit, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT record_id, name FROM search_docs WHERE resource = $1 AND field = $2 AND body ILIKE '%' || $3 || '%'",
		string(f.Resource), f.ContentType, term)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
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
