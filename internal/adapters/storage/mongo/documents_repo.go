package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"crud-collections-api/internal/ports/docstore"
)

// DocumentsRepo implementa docstore.Store sobre una base de MongoDB.
// Los ids son ObjectID y se exponen en su forma hex.
type DocumentsRepo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewDocumentsRepo(client *mongo.Client, database string) *DocumentsRepo {
	return &DocumentsRepo{
		client: client,
		db:     client.Database(database),
	}
}

func (r *DocumentsRepo) FindAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	cur, err := r.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	out := make([]docstore.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, toDocument(m))
	}
	return out, nil
}

func (r *DocumentsRepo) FindByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return docstore.Document{}, err
	}

	var m bson.M
	err = r.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}
	return toDocument(m), nil
}

func (r *DocumentsRepo) Insert(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	doc := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}

	res, err := r.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *DocumentsRepo) UpdateByID(ctx context.Context, collection, id string, fields docstore.Fields) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		set[k] = v
	}

	res, err := r.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *DocumentsRepo) DeleteByID(ctx context.Context, collection, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *DocumentsRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *DocumentsRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", docstore.ErrInvalidID, id)
	}
	return oid, nil
}

func toDocument(m bson.M) docstore.Document {
	d := docstore.Document{Fields: docstore.Fields{}}
	for k, v := range m {
		if k == "_id" {
			d.ID = idString(v)
			continue
		}
		d.Fields[k] = fromBSON(v)
	}
	return d
}

func idString(v any) string {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

// fromBSON convierte tipos del driver a tipos JSON-friendly.
func fromBSON(v any) any {
	switch t := v.(type) {
	case int32:
		return int64(t)
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = fromBSON(x)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = fromBSON(x)
		}
		return out
	default:
		return v
	}
}
