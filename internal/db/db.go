package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)

	if err != nil {
		return nil, err
	}

	cfg.MaxConns = 5

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)

	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)

	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// Execer is the subset of the pool needed to bootstrap the schema.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var documentsDDL = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id          text        PRIMARY KEY,
		collection  text        NOT NULL,
		body        jsonb       NOT NULL,
		created_at  timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS documents_collection_created_idx
		ON documents (collection, created_at, id)`,
}

// EnsureDocumentsTable creates the single table every collection lives in.
func EnsureDocumentsTable(ctx context.Context, db Execer) error {
	for _, stmt := range documentsDDL {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
