package document

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Document is one stored record. Body holds the collection specific shape
// without the id and creation time, which live next to it.
type Document struct {
	ID         string          `json:"id"`
	Collection string          `json:"collection"`
	Body       json.RawMessage `json:"body"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Cursor marks the last document of a page; listing resumes strictly after it.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

type ListQuery struct {
	After *Cursor
	Limit int
}

// After reports whether d sorts strictly after c in (createdAt, id) order.
func (d Document) After(c Cursor) bool {
	if d.CreatedAt.Equal(c.CreatedAt) {
		return d.ID > c.ID
	}
	return d.CreatedAt.After(c.CreatedAt)
}
