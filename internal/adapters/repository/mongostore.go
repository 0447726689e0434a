package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/C0nnectify/edulens/internal/domain/model"
)

// mongoOpTimeout bounds individual store operations.
const mongoOpTimeout = 5 * time.Second

// MongoStore implements Store on a MongoDB collection with a unique index
// on the content hash. The index, not the pipeline, enforces the durable
// uniqueness invariant.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore wraps a collection and ensures the unique hash index.
func NewMongoStore(ctx context.Context, db *mongo.Database, collectionName string) (*MongoStore, error) {
	coll := db.Collection(collectionName)

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hash", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ensure hash index: %w", ErrStore, err)
	}
	return &MongoStore{collection: coll}, nil
}

// InsertIfAbsent performs an atomic insert-if-absent keyed by hash using a
// $setOnInsert upsert. An existing hash leaves the document untouched and
// reports a duplicate, not an error.
func (s *MongoStore) InsertIfAbsent(ctx context.Context, r *model.CleanedRecord) (bool, error) {
	if r.Hash == "" {
		return false, ErrMissingHash
	}

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	res, err := s.collection.UpdateOne(ctx,
		bson.M{"hash": r.Hash},
		bson.M{"$setOnInsert": toDocument(r)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// The unique index can still race an upsert; a duplicate-key error
		// means someone else inserted first, which is a duplicate outcome.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: insert %s: %w", ErrStore, r.Hash, err)
	}
	return res.UpsertedCount == 1, nil
}

// Find returns matching records in insertion order with skip/limit paging.
func (s *MongoStore) Find(ctx context.Context, f Filter, skip, limit int) ([]*model.CleanedRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "inserted_at", Value: 1}})
	if skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.collection.Find(ctx, filterQuery(f), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find: %w", ErrStore, err)
	}
	defer cur.Close(ctx)

	var docs []recordDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrStore, err)
	}
	out := make([]*model.CleanedRecord, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toRecord())
	}
	return out, nil
}

// Count returns the number of matching records.
func (s *MongoStore) Count(ctx context.Context, f Filter) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	n, err := s.collection.CountDocuments(ctx, filterQuery(f))
	if err != nil {
		return 0, fmt.Errorf("%w: count: %w", ErrStore, err)
	}
	return int(n), nil
}

// All returns every stored record in insertion order.
func (s *MongoStore) All(ctx context.Context) ([]*model.CleanedRecord, error) {
	return s.Find(ctx, Filter{}, 0, 0)
}

func filterQuery(f Filter) bson.M {
	q := bson.M{}
	if f.University != "" {
		q["university"] = f.University
	}
	if f.Decision != "" {
		q["decision"] = string(f.Decision)
	}
	if f.Season != "" {
		q["season"] = f.Season
	}
	if f.ValidOnly {
		q["is_valid"] = true
	}
	return q
}
