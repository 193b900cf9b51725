package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrdash/hrdash/internal/records"
)

// ListDocuments returns every document of a collection, newest first.
func (db *DB) ListDocuments(ctx context.Context, collection string) ([]records.RawDocument, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, body FROM documents
		WHERE collection = ?
		ORDER BY created_at DESC, id`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer func() { _ = rows.Close() }()

	var docs []records.RawDocument
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		fields, err := decodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, records.RawDocument{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

// UpdateStatus sets the status field of one document.
func (db *DB) UpdateStatus(ctx context.Context, collection, id string, status records.Status) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `
		UPDATE documents
		SET body = json_set(body, '$.status', ?), updated_at = ?
		WHERE collection = ? AND id = ?`,
		string(status), time.Now().UnixMilli(), collection, id)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// CreateDocument inserts a document under a new id. Unless the payload
// carries its own creation time, the store stamps a timestamp object
// {"seconds", "nanos"} taken from its clock.
func (db *DB) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}
	now := time.Now()
	body := make(map[string]any, len(fields)+1)
	maps.Copy(body, fields)
	if !hasCreationTime(body) {
		body["timestamp"] = map[string]any{
			"seconds": now.Unix(),
			"nanos":   now.Nanosecond(),
		}
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	if _, err := db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		collection, id, string(encoded), creationMillis(body, now), now.UnixMilli()); err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	return id, nil
}

// CountDocuments returns the number of documents in a collection.
func (db *DB) CountDocuments(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE collection = ?`, collection).Scan(&count)
	return count, err
}

// decodeBody keeps numbers as json.Number so epoch milliseconds survive
// without float rounding.
func decodeBody(body string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// creationMillis orders rows by the document's own creation time when it can
// be read, falling back to the insert time.
func creationMillis(body map[string]any, now time.Time) int64 {
	raw := body["timestamp"]
	if raw == nil {
		raw = body["createdAt"]
	}
	if t, ok := records.Instant(raw); ok {
		return t.UnixMilli()
	}
	return now.UnixMilli()
}
