package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrdash/hrdash/internal/records"
)

// Mongo is a document store backed by a MongoDB database, one Mongo
// collection per record collection.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{
		Client:   client,
		Database: client.Database(database),
	}, nil
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

func (m *Mongo) Name() string { return BackendMongo }

// ListDocuments returns every document of a collection, newest first.
func (m *Mongo) ListDocuments(ctx context.Context, collection string) ([]records.RawDocument, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := m.Database.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []records.RawDocument
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		docs = append(docs, rawFromBSON(doc))
	}
	return docs, cursor.Err()
}

// UpdateStatus sets the status field of one document.
func (m *Mongo) UpdateStatus(ctx context.Context, collection, id string, status records.Status) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	res, err := m.Database.Collection(collection).UpdateOne(ctx, idFilter(id),
		bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// CreateDocument inserts a document and returns its ObjectID in hex. Unless
// the payload carries its own creation time, timestamp is set to the
// current time as a BSON datetime.
func (m *Mongo) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = bsonValue(v)
	}
	delete(doc, "_id")
	if !hasCreationTime(fields) {
		doc["timestamp"] = primitive.NewDateTimeFromTime(time.Now())
	}
	res, err := m.Database.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	return idString(res.InsertedID), nil
}

func (m *Mongo) CountDocuments(ctx context.Context, collection string) (int64, error) {
	return m.Database.Collection(collection).CountDocuments(ctx, bson.D{})
}

// idFilter matches either an ObjectID or a plain string _id, since documents
// written by other tools may use either.
func idFilter(id string) bson.M {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{"_id": id}
	}
	return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func rawFromBSON(doc bson.M) records.RawDocument {
	fields := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		fields[k] = plainValue(v)
	}
	return records.RawDocument{ID: idString(doc["_id"]), Fields: fields}
}

// plainValue converts decoded BSON into plain Go values. Datetimes become
// the {"seconds", "nanos"} timestamp object shape.
func plainValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		ms := int64(t)
		return map[string]any{
			"seconds": floorDiv(ms, 1000),
			"nanos":   (ms - floorDiv(ms, 1000)*1000) * int64(time.Millisecond),
		}
	case primitive.Timestamp:
		return map[string]any{"seconds": int64(t.T), "nanos": int64(0)}
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case int32:
		return int64(t)
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

// bsonValue converts payload values that the BSON encoder would otherwise
// store with the wrong type.
func bsonValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := bson.M{}
		for k, e := range t {
			out[k] = bsonValue(e)
		}
		return out
	case []any:
		out := make(bson.A, len(t))
		for i, e := range t {
			out[i] = bsonValue(e)
		}
		return out
	default:
		return v
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
