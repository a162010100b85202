package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/pravaah/internal/domain/document"
	"github.com/geocoder89/pravaah/internal/observability"
	"github.com/jackc/pgx/v5"
)

// DocumentsRepo stores every collection in one jsonb table keyed by
// (collection, id).
type DocumentsRepo struct {
	db   Querier
	prom *observability.Prom
}

func NewDocumentsRepo(db Querier, prom *observability.Prom) *DocumentsRepo {
	return &DocumentsRepo{
		db:   db,
		prom: prom,
	}
}

func (r *DocumentsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *DocumentsRepo) Insert(ctx context.Context, doc document.Document) error {
	return r.observe("documents.insert", func() error {
		_, err := r.db.Exec(ctx,
			`INSERT INTO documents (id, collection, body, created_at) VALUES ($1, $2, $3, $4)`,
			doc.ID, doc.Collection, []byte(doc.Body), doc.CreatedAt,
		)
		return err
	})
}

func (r *DocumentsRepo) Get(ctx context.Context, collection, id string) (document.Document, error) {
	var doc document.Document

	err := r.observe("documents.get", func() error {
		var body []byte

		err := r.db.QueryRow(ctx,
			`SELECT id, collection, body, created_at
			FROM documents
			WHERE collection = $1 AND id = $2`,
			collection, id,
		).Scan(&doc.ID, &doc.Collection, &body, &doc.CreatedAt)
		if err != nil {
			return err
		}

		doc.Body = body
		return nil
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrNotFound
		}
		return document.Document{}, err
	}

	doc.CreatedAt = doc.CreatedAt.UTC()
	return doc, nil
}

func (r *DocumentsRepo) List(ctx context.Context, collection string, q document.ListQuery) ([]document.Document, error) {
	query := `SELECT id, collection, body, created_at
		FROM documents
		WHERE collection = $1`
	args := []any{collection}

	if q.After != nil {
		query += ` AND (created_at, id) > ($2, $3)`
		args = append(args, q.After.CreatedAt, q.After.ID)
	}

	query += ` ORDER BY created_at, id`

	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	docs := make([]document.Document, 0)

	err := r.observe("documents.list", func() error {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				doc  document.Document
				body []byte
			)
			if err := rows.Scan(&doc.ID, &doc.Collection, &body, &doc.CreatedAt); err != nil {
				return err
			}
			doc.Body = body
			doc.CreatedAt = doc.CreatedAt.UTC()
			docs = append(docs, doc)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *DocumentsRepo) Count(ctx context.Context, collection string) (int64, error) {
	var n int64

	err := r.observe("documents.count", func() error {
		return r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM documents WHERE collection = $1`,
			collection,
		).Scan(&n)
	})

	return n, err
}

func (r *DocumentsRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
