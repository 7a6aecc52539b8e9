package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/eclipse-sw360/sw360-search/internal/db"
	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
)

// allFieldsMarker as the last mask element widens the search to every text field.
const allFieldsMarker = "document"

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Query is one backend request: a query variant plus a type filter.
type Query struct {
	Text     string
	Types    []string
	Wildcard bool
}

// Config describes the realm a Repo serves.
type Config struct {
	Realm           string
	Index           string
	Limit           int
	LeadingWildcard bool
	NameFields      domain.NameFields
}

// Repo implements usecase/search.Repository for one realm.
type Repo struct {
	store store
	cfg   Config
}

// New creates a search repository. A nil name-field table uses domain.DefaultNameFields.
func New(s store, cfg Config) *Repo {
	if cfg.NameFields == nil {
		cfg.NameFields = domain.DefaultNameFields()
	}
	return &Repo{store: s, cfg: cfg}
}

// Realm returns the realm tag stamped on results.
func (r *Repo) Realm() string { return r.cfg.Realm }

// Search runs one full-text query and converts the hits into results.
// Hits whose display name is empty are dropped.
func (r *Repo) Search(ctx context.Context, q Query) ([]result.Result, error) {
	types, fields := restrict(q.Types)

	tq := &db.TextQuery{
		Index:           r.cfg.Index,
		Text:            q.Text,
		Wildcard:        q.Wildcard,
		LeadingWildcard: r.cfg.LeadingWildcard,
		Types:           types,
		Fields:          fields,
		Limit:           r.cfg.Limit,
	}

	sr, err := r.store.SearchText(ctx, tq)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.cfg.Index, err)
	}

	return r.parseResults(sr), nil
}

// restrict turns a type mask into a type filter and the fields to search.
func restrict(mask []string) (types, fields []string) {
	if n := len(mask); n > 0 && mask[n-1] == allFieldsMarker {
		return mask[:n-1:n-1], nil
	}
	if len(mask) == 0 {
		return nil, domain.SearchFields(nil)
	}
	return mask, domain.SearchFields(mask)
}

func (r *Repo) parseResults(sr *db.SearchResult) []result.Result {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		typ := entry.Fields[db.FieldType]
		name := r.displayName(typ, entry.Fields)
		if name == "" {
			continue
		}
		id := entry.ID
		if id == "" {
			id = entry.Fields[db.FieldID]
		}
		results = append(results, result.New(r.cfg.Realm, id, name, typ, entry.Score, entry.Fields))
	}
	return results
}

// displayName joins the type's name fields with a space, skipping empty parts.
func (r *Repo) displayName(typ string, fields map[string]string) string {
	keys, ok := r.cfg.NameFields[typ]
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(fields[k]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
