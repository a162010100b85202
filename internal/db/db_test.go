package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestEnsureDocumentsTable(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS documents_collection_created_idx`).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	if err := EnsureDocumentsTable(context.Background(), mock); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("new redis: %v", err)
	}
	defer rdb.Close()

	mr.Close()

	if _, err := NewRedis(context.Background(), RedisConfig{Addr: mr.Addr()}); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}
