package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/geocoder89/pravaah/internal/schema"
)

// Client talks to the collection API. The zero timeout means no client side
// deadline beyond the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status    int                 `json:"-"`
	Message   string              `json:"error"`
	Code      string              `json:"code"`
	RequestID string              `json:"requestId"`
	Details   []schema.FieldError `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

type CreateResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type Page struct {
	Items      []json.RawMessage `json:"items"`
	Count      int               `json:"count"`
	Total      int64             `json:"total"`
	NextCursor string            `json:"nextCursor"`
}

type SchemaCollection struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Icon        string         `json:"icon"`
	Fields      []schema.Field `json:"fields"`
}

// Create posts one record to collection.
func (c *Client) Create(ctx context.Context, collection string, payload map[string]any) (CreateResponse, error) {
	var out CreateResponse
	err := c.do(ctx, http.MethodPost, "/api/"+url.PathEscape(collection), payload, &out)
	return out, err
}

// List fetches one page; an empty cursor starts at the oldest record.
func (c *Client) List(ctx context.Context, collection, cursor string, limit int) (Page, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/" + url.PathEscape(collection)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out Page
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Schema(ctx context.Context) ([]SchemaCollection, error) {
	var out struct {
		Collections []SchemaCollection `json:"collections"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/schema", nil, &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return apiErr
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
