package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/pravaah/internal/domain/document"
	"github.com/geocoder89/pravaah/internal/observability"
	"github.com/geocoder89/pravaah/internal/schema"
	"github.com/geocoder89/pravaah/internal/security"
	"github.com/geocoder89/pravaah/internal/utils"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var (
	ErrNotFound      = document.ErrNotFound
	ErrInvalidCursor = utils.ErrInvalidCursor
	ErrPersistence   = errors.New("persistence failure")
)

type Store interface {
	Insert(ctx context.Context, doc document.Document) error
	Get(ctx context.Context, collection, id string) (document.Document, error)
	List(ctx context.Context, collection string, q document.ListQuery) ([]document.Document, error)
	Count(ctx context.Context, collection string) (int64, error)
	Ping(ctx context.Context) error
}

type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
	DeletePrefix(ctx context.Context, prefix string)
}

type Options struct {
	Cache  ListCache
	Hasher func(plain string) (string, error)
	Now    func() time.Time
	NewID  func() string
	Logger *slog.Logger
	Prom   *observability.Prom
}

// Service routes submissions to the collection they name. Every kind goes
// through the same steps: validate, transform, stamp, persist.
type Service struct {
	store  Store
	cache  ListCache
	hasher func(string) (string, error)
	now    func() time.Time
	newID  func() string
	log    *slog.Logger
	prom   *observability.Prom

	genMu sync.Mutex
	gens  map[string]uint64 // per collection, bumped after every insert
}

func NewService(store Store, opts Options) *Service {
	s := &Service{
		store:  store,
		cache:  opts.Cache,
		hasher: opts.Hasher,
		now:    opts.Now,
		newID:  opts.NewID,
		log:    opts.Logger,
		prom:   opts.Prom,
		gens:   make(map[string]uint64),
	}

	if s.hasher == nil {
		s.hasher = security.HashPassword
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	return s
}

type Created struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Page struct {
	Items      []json.RawMessage `json:"items"`
	Count      int               `json:"count"`
	Total      int64             `json:"total"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

// Create validates body against the collection schema and stores it. Nothing
// is written unless every field passes.
func (s *Service) Create(ctx context.Context, collection string, body map[string]any) (Created, error) {
	kind, err := schema.ParseKind(collection)
	if err != nil {
		s.rejected("unknown", "unknown_collection")
		return Created{}, err
	}

	c, _ := schema.Lookup(kind)

	normalized, err := schema.Validate(c, body)
	if err != nil {
		s.rejected(kind.String(), "validation")
		return Created{}, err
	}

	stored, err := s.storageBody(kind, normalized)
	if err != nil {
		s.rejected(kind.String(), "transform")
		return Created{}, fmt.Errorf("prepare %s document: %w", kind, err)
	}

	doc := document.Document{
		ID:         s.newID(),
		Collection: kind.String(),
		Body:       stored,
		// stores keep millisecond precision at best
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Insert(ctx, doc); err != nil {
		s.rejected(kind.String(), "persistence")
		s.log.ErrorContext(ctx, "document.insert_failed",
			"collection", doc.Collection,
			"err", err,
		)
		return Created{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.bumpGeneration(doc.Collection)
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, utils.DocumentsListCachePrefix(doc.Collection))
	}
	if s.prom != nil {
		s.prom.DocumentsCreated.WithLabelValues(doc.Collection).Inc()
	}

	s.log.InfoContext(ctx, "document.created",
		"collection", doc.Collection,
		"document_id", doc.ID,
	)

	return Created{ID: doc.ID, Collection: doc.Collection, CreatedAt: doc.CreatedAt}, nil
}

// List returns one page of a collection in creation order. cursor is the
// opaque NextCursor of a previous page, or empty for the first page.
func (s *Service) List(ctx context.Context, collection, cursor string, limit int) (Page, error) {
	kind, err := schema.ParseKind(collection)
	if err != nil {
		return Page{}, err
	}

	limit = clampLimit(limit)

	q := document.ListQuery{Limit: limit + 1}
	if cursor != "" {
		cur, err := utils.DecodeDocumentCursor(cursor)
		if err != nil {
			return Page{}, err
		}
		q.After = &document.Cursor{CreatedAt: cur.CreatedAt, ID: cur.ID}
	}

	// read before the store so a concurrent insert retires this key
	key := utils.BuildDocumentsListCacheKey(kind.String(), s.generation(kind.String()), cursor, limit)
	if page, ok := s.cachedPage(ctx, key); ok {
		return page, nil
	}

	docs, err := s.store.List(ctx, kind.String(), q)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	total, err := s.store.Count(ctx, kind.String())
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	hasMore := len(docs) > limit
	if hasMore {
		docs = docs[:limit]
	}

	page := Page{
		Items: make([]json.RawMessage, 0, len(docs)),
		Total: total,
	}

	for _, doc := range docs {
		view, err := publicView(kind, doc)
		if err != nil {
			return Page{}, err
		}
		page.Items = append(page.Items, view)
	}
	page.Count = len(page.Items)

	if hasMore && len(docs) > 0 {
		last := docs[len(docs)-1]
		next, err := utils.EncodeDocumentCursor(last.CreatedAt, last.ID)
		if err != nil {
			return Page{}, err
		}
		page.NextCursor = next
	}

	if s.cache != nil {
		if b, err := json.Marshal(page); err == nil {
			s.cache.Set(ctx, key, b)
		}
	}

	return page, nil
}

// Get returns the public view of one document.
func (s *Service) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	kind, err := schema.ParseKind(collection)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, kind.String(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return publicView(kind, doc)
}

func (s *Service) Count(ctx context.Context, collection string) (int64, error) {
	kind, err := schema.ParseKind(collection)
	if err != nil {
		return 0, err
	}

	n, err := s.store.Count(ctx, kind.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return n, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) generation(collection string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gens[collection]
}

func (s *Service) bumpGeneration(collection string) {
	s.genMu.Lock()
	s.gens[collection]++
	s.genMu.Unlock()
}

func (s *Service) cachedPage(ctx context.Context, key string) (Page, bool) {
	if s.cache == nil {
		return Page{}, false
	}

	b, ok := s.cache.Get(ctx, key)
	if ok {
		var page Page
		if err := json.Unmarshal(b, &page); err == nil {
			s.cacheLookup("hit")
			return page, true
		}
	}

	s.cacheLookup("miss")
	return Page{}, false
}

func (s *Service) cacheLookup(result string) {
	if s.prom != nil {
		s.prom.CacheLookups.WithLabelValues(result).Inc()
	}
}

func (s *Service) rejected(collection, reason string) {
	if s.prom != nil {
		s.prom.DocumentsRejected.WithLabelValues(collection, reason).Inc()
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
