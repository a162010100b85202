package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/pravaah/internal/domain/document"
	"github.com/geocoder89/pravaah/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/prometheus/client_golang/prometheus"
)

func newMockRepo(t *testing.T) (*DocumentsRepo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	prom := observability.NewProm(prometheus.NewRegistry())

	return NewDocumentsRepo(mock, prom), mock
}

func TestDocumentsRepo_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs("doc-1", "users", pgxmock.AnyArg(), createdAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Insert(context.Background(), document.Document{
		ID:         "doc-1",
		Collection: "users",
		Body:       []byte(`{"username":"a"}`),
		CreatedAt:  createdAt,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentsRepo_InsertError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO documents`).
		WillReturnError(errors.New("connection refused"))

	err := repo.Insert(context.Background(), document.Document{ID: "x", Collection: "users", Body: []byte(`{}`), CreatedAt: time.Now()})
	if err == nil {
		t.Fatalf("expected insert error")
	}
}

func TestDocumentsRepo_Get(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, collection, body, created_at`).
		WithArgs("hotels", "doc-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "collection", "body", "created_at"}).
			AddRow("doc-1", "hotels", []byte(`{"name":"Taj"}`), createdAt))

	doc, err := repo.Get(context.Background(), "hotels", "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.ID != "doc-1" || string(doc.Body) != `{"name":"Taj"}` || !doc.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected document: %+v", doc)
	}

	mock.ExpectQuery(`SELECT id, collection, body, created_at`).
		WithArgs("hotels", "missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.Get(context.Background(), "hotels", "missing"); !errors.Is(err, document.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentsRepo_ListWithCursor(t *testing.T) {
	repo, mock := newMockRepo(t)
	after := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE collection = \$1 AND \(created_at, id\) > \(\$2, \$3\) ORDER BY created_at, id LIMIT \$4`).
		WithArgs("users", after, "doc-1", 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "collection", "body", "created_at"}).
			AddRow("doc-2", "users", []byte(`{}`), after.Add(time.Second)).
			AddRow("doc-3", "users", []byte(`{}`), after.Add(2*time.Second)))

	docs, err := repo.List(context.Background(), "users", document.ListQuery{
		After: &document.Cursor{CreatedAt: after, ID: "doc-1"},
		Limit: 2,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" || docs[1].ID != "doc-3" {
		t.Fatalf("unexpected page: %+v", docs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentsRepo_Count(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents`).
		WithArgs("itineraries").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background(), "itineraries")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
}
