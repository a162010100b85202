package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/pravaah/internal/domain/document"
	"github.com/geocoder89/pravaah/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	idKey        = "_id"
	createdAtKey = "createdAt"
)

// DocumentsRepo keeps one MongoDB collection per record kind. Documents are
// stored as natural BSON: {_id, ...fields, createdAt}.
type DocumentsRepo struct {
	db   *mongo.Database
	prom *observability.Prom
}

func NewDocumentsRepo(db *mongo.Database, prom *observability.Prom) *DocumentsRepo {
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
	var fields bson.D
	if err := bson.UnmarshalExtJSON(doc.Body, false, &fields); err != nil {
		return err
	}

	out := make(bson.D, 0, len(fields)+2)
	out = append(out, bson.E{Key: idKey, Value: doc.ID})
	out = append(out, fields...)
	out = append(out, bson.E{Key: createdAtKey, Value: doc.CreatedAt})

	return r.observe("documents.insert", func() error {
		_, err := r.db.Collection(doc.Collection).InsertOne(ctx, out)
		return err
	})
}

func (r *DocumentsRepo) Get(ctx context.Context, collection, id string) (document.Document, error) {
	var raw bson.D

	err := r.observe("documents.get", func() error {
		return r.db.Collection(collection).FindOne(ctx, bson.M{idKey: id}).Decode(&raw)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return document.Document{}, document.ErrNotFound
		}
		return document.Document{}, err
	}

	return fromBSON(collection, raw)
}

func (r *DocumentsRepo) List(ctx context.Context, collection string, q document.ListQuery) ([]document.Document, error) {
	filter := bson.M{}
	if q.After != nil {
		filter = bson.M{"$or": bson.A{
			bson.M{createdAtKey: bson.M{"$gt": q.After.CreatedAt}},
			bson.M{createdAtKey: q.After.CreatedAt, idKey: bson.M{"$gt": q.After.ID}},
		}}
	}

	opts := options.Find().SetSort(bson.D{{Key: createdAtKey, Value: 1}, {Key: idKey, Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	var raws []bson.D
	err := r.observe("documents.list", func() error {
		cur, err := r.db.Collection(collection).Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &raws)
	})
	if err != nil {
		return nil, err
	}

	docs := make([]document.Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := fromBSON(collection, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (r *DocumentsRepo) Count(ctx context.Context, collection string) (int64, error) {
	var n int64

	err := r.observe("documents.count", func() error {
		var err error
		n, err = r.db.Collection(collection).CountDocuments(ctx, bson.M{})
		return err
	})

	return n, err
}

func (r *DocumentsRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

// fromBSON splits the stored id and timestamp off a raw document and turns
// the remaining fields back into the JSON body.
func fromBSON(collection string, raw bson.D) (document.Document, error) {
	doc := document.Document{Collection: collection}
	rest := make(bson.D, 0, len(raw))

	for _, e := range raw {
		switch e.Key {
		case idKey:
			switch v := e.Value.(type) {
			case string:
				doc.ID = v
			case primitive.ObjectID:
				doc.ID = v.Hex()
			}
		case createdAtKey:
			switch v := e.Value.(type) {
			case primitive.DateTime:
				doc.CreatedAt = v.Time().UTC()
			case time.Time:
				doc.CreatedAt = v.UTC()
			}
		default:
			rest = append(rest, e)
		}
	}

	body, err := bson.MarshalExtJSON(rest, false, false)
	if err != nil {
		return document.Document{}, err
	}
	doc.Body = body

	return doc, nil
}
