package store

import (
	"context"
	"errors"

	"github.com/hrdash/hrdash/internal/records"
)

// Backend names accepted in configuration.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the remote store contract the dashboard consumes: list a
// collection, update one document's status, insert a document.
type DocumentStore interface {
	ListDocuments(ctx context.Context, collection string) ([]records.RawDocument, error)
	UpdateStatus(ctx context.Context, collection, id string, status records.Status) error
	CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error)
}

// Backend is a DocumentStore owned by the daemon.
type Backend interface {
	DocumentStore
	CountDocuments(ctx context.Context, collection string) (int64, error)
	Ping(ctx context.Context) error
	Name() string
	Close() error
}

var (
	_ Backend = (*DB)(nil)
	_ Backend = (*Mongo)(nil)
)

func checkCollection(collection string) error {
	_, err := records.KindForCollection(collection)
	return err
}

// hasCreationTime reports whether a payload already carries a creation time,
// in which case the store does not stamp one.
func hasCreationTime(fields map[string]any) bool {
	for _, k := range []string{"timestamp", "createdAt"} {
		if v, ok := fields[k]; ok && v != nil {
			return true
		}
	}
	return false
}
