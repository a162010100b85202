package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/geocoder89/pravaah/internal/domain/document"
)

// DocumentsRepo keeps documents in process, grouped by collection.
type DocumentsRepo struct {
	mu    sync.RWMutex
	items map[string]map[string]document.Document // collection -> id -> doc
}

func NewDocumentsRepo() *DocumentsRepo {
	return &DocumentsRepo{
		items: make(map[string]map[string]document.Document),
	}
}

func (r *DocumentsRepo) Insert(_ context.Context, doc document.Document) error {
	doc.Body = append([]byte(nil), doc.Body...)

	r.mu.Lock()
	defer r.mu.Unlock()

	coll, ok := r.items[doc.Collection]
	if !ok {
		coll = make(map[string]document.Document)
		r.items[doc.Collection] = coll
	}
	coll[doc.ID] = doc

	return nil
}

func (r *DocumentsRepo) Get(_ context.Context, collection, id string) (document.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.items[collection][id]
	if !ok {
		return document.Document{}, document.ErrNotFound
	}

	return doc, nil
}

func (r *DocumentsRepo) List(_ context.Context, collection string, q document.ListQuery) ([]document.Document, error) {
	r.mu.RLock()
	docs := make([]document.Document, 0, len(r.items[collection]))
	for _, doc := range r.items[collection] {
		if q.After != nil && !doc.After(*q.After) {
			continue
		}
		docs = append(docs, doc)
	}
	r.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}

	return docs, nil
}

func (r *DocumentsRepo) Count(_ context.Context, collection string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items[collection])), nil
}

func (r *DocumentsRepo) Ping(context.Context) error {
	return nil
}
