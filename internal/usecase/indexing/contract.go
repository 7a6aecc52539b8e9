package indexing

import (
	"context"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// Store creates a realm's index and writes documents into it.
type Store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	PutDocuments(ctx context.Context, index string, docs []db.Document) error
}
