package db

import (
	"context"
	"time"
)

// Store is the realm backend facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade; consumers use the narrow sub-interfaces
type Store interface {
	Pinger
	IndexManager
	DocumentWriter
	Searcher
	Close()
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides full-text index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// DocumentWriter stores documents so that an index picks them up.
type DocumentWriter interface {
	PutDocuments(ctx context.Context, index string, docs []Document) error
}

// Searcher runs full-text queries.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
}

// Reserved document fields present in every indexed document.
const (
	FieldID   = "id"
	FieldType = "type"
)

// Document is one indexable record of a realm.
type Document struct {
	ID     string            `json:"id"`
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields"`
}

// Flatten returns the fields including the reserved id and type entries.
func (d *Document) Flatten() map[string]string {
	m := make(map[string]string, len(d.Fields)+2)
	for k, v := range d.Fields {
		m[k] = v
	}
	m[FieldID] = d.ID
	m[FieldType] = d.Type
	return m
}

// WaitForReady polls Ping until the backend responds or timeout expires.
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := p.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return &Error{Op: OpPing, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}
