package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidCursor = errors.New("invalid cursor")

type DocumentCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

func EncodeDocumentCursor(createdAt time.Time, id string) (string, error) {
	b, err := json.Marshal(DocumentCursor{CreatedAt: createdAt, ID: id})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeDocumentCursor(cursor string) (DocumentCursor, error) {
	if cursor == "" {
		return DocumentCursor{}, ErrInvalidCursor
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return DocumentCursor{}, ErrInvalidCursor
	}

	var c DocumentCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return DocumentCursor{}, ErrInvalidCursor
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return DocumentCursor{}, ErrInvalidCursor
	}
	return c, nil
}
