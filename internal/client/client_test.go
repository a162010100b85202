package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/users" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing json content type")
		}

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "a" {
			t.Errorf("payload not sent: %v", body)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"id":"u-1","message":"Document added to users successfully"}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL+"/", 0).Create(context.Background(), "users", map[string]any{"username": "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "u-1" || got.Message != "Document added to users successfully" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestCreate_ServerReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"validation failed: email is required","code":"invalid_request","requestId":"r-1","details":[{"field":"email","rule":"required"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Create(context.Background(), "users", map[string]any{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Error() != "validation failed: email is required" || apiErr.RequestID != "r-1" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if len(apiErr.Details) != 1 || apiErr.Details[0].Field != "email" {
		t.Fatalf("details not decoded: %+v", apiErr.Details)
	}
}

func TestCreate_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Create(context.Background(), "users", map[string]any{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway || apiErr.Message != "HTTP 502: bad gateway" {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") != "c1" || r.URL.Query().Get("limit") != "5" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"success":true,"items":[{"id":"1"}],"count":1,"total":6,"nextCursor":"c2"}`))
	}))
	defer srv.Close()

	page, err := New(srv.URL, 0).List(context.Background(), "hotels", "c1", 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Count != 1 || page.Total != 6 || page.NextCursor != "c2" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
