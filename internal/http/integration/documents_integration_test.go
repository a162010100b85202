package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/geocoder89/pravaah/internal/cache"
	"github.com/geocoder89/pravaah/internal/collections"
	"github.com/geocoder89/pravaah/internal/config"
	"github.com/geocoder89/pravaah/internal/db"
	apphttp "github.com/geocoder89/pravaah/internal/http"
	"github.com/geocoder89/pravaah/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		StoreDriver:    config.StorePostgres,
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxBodyBytes:   1 << 20,
	}
}

type apiErrorResponse struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	RequestID string          `json:"requestId"`
	Details   json.RawMessage `json:"details"`
}

// setupTestRouter needs a reachable Postgres in TEST_DB_DSN.
func setupTestRouter(t *testing.T) (*gin.Engine, *pgxpool.Pool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.EnsureDocumentsTable(ctx, pool); err != nil {
		t.Fatalf("Failed to create documents table: %v", err)
	}

	// Basic logger that discards outputs during tests
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	svc := collections.NewService(postgres.NewDocumentsRepo(pool, nil), collections.Options{
		Cache:  cache.New(time.Minute),
		Logger: logger,
	})

	router := apphttp.NewRouter(logger, testConfig(), apphttp.Deps{Service: svc})

	return router, pool
}

// reset db function after every test

func resetDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), `TRUNCATE documents`); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func countDocuments(t *testing.T, pool *pgxpool.Pool, collection string) int {
	t.Helper()

	var count int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM documents WHERE collection = $1`, collection,
	).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count documents: %v", err)
	}
	return count
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateUserIntegration_HappyPath(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)
	defer resetDB(t, pool)

	w := postJSON(router, "/api/users", `{"username":"sam","email":"sam@example.com","password":"pw1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}

	var stored string
	err := pool.QueryRow(context.Background(),
		`SELECT body->>'password' FROM documents WHERE collection = 'users'`,
	).Scan(&stored)
	if err != nil {
		t.Fatalf("failed to query users: %v", err)
	}
	if stored == "pw1" || stored == "" {
		t.Fatalf("password not hashed: %q", stored)
	}
}

func TestCreateItineraryIntegration_ValidationRejects(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)
	defer resetDB(t, pool)

	body := `{"location":"Goa","restaurants":[{"name":"R","address":"A","map_url":"not a url","image_url":"https://i.example/r.jpg","ratings":3}]}`

	w := postJSON(router, "/api/itineraries", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var response apiErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal error response: %v", err)
	}
	if response.Success || response.Code != "invalid_request" || response.RequestID == "" {
		t.Fatalf("unexpected error envelope: %+v", response)
	}

	if n := countDocuments(t, pool, "itineraries"); n != 0 {
		t.Fatalf("expected no itineraries, got %d", n)
	}
}

func TestListIntegration_Pagination(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)
	defer resetDB(t, pool)

	for _, name := range []string{"One", "Two", "Three"} {
		body := `{"name":"` + name + `","address":"Goa","image_url":"https://i.example/x.jpg","map_url":"https://m.example/x","rating":4}`
		if w := postJSON(router, "/api/hotels", body); w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", name, w.Code, w.Body.String())
		}
	}

	var cursor string
	seen := 0
	for page := 0; page < 3; page++ {
		path := "/api/hotels?limit=2"
		if cursor != "" {
			path += "&cursor=" + cursor
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("list: %d %s", w.Code, w.Body.String())
		}

		var resp struct {
			Items      []json.RawMessage `json:"items"`
			NextCursor string            `json:"nextCursor"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		seen += len(resp.Items)

		if resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	if seen != 3 {
		t.Fatalf("paged through %d hotels, want 3", seen)
	}
}
