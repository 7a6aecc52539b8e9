package sw360search

import (
	"github.com/eclipse-sw360/sw360-search/internal/domain"
)

// Realm names accepted by Client.Index.
const (
	RealmUsers   = domain.RealmUsers
	RealmCatalog = domain.RealmCatalog
)

// User identifies who is searching. Catalog project hits are filtered by it.
type User struct {
	Email      string
	Department string
	Group      string
}

// Result is one merged search hit.
type Result struct {
	ID    string
	Name  string
	Type  string
	Score float64
	Realm string
}

// Document is one record to index. Fields must not contain "id" or "type".
type Document struct {
	ID     string
	Type   string
	Fields map[string]string
}

// BatchResult reports the outcome of one document in Client.Index.
type BatchResult struct {
	ID  string
	OK  bool
	Err error
}
