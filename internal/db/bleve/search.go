package bleve

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// defaultFields are searched when the query names none.
var defaultFields = []string{"name", "fullname", "title"}

// SearchText runs the query against one index.
func (s *Store) SearchText(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	bq := buildQuery(q)
	if bq == nil {
		return &db.SearchResult{}, nil
	}

	idx, err := s.index(q.Index)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	req := bleve.NewSearchRequestOptions(bq, q.Limit, 0, false)
	req.Fields = []string{"*"}

	res, err := idx.Search(req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	entries := make([]db.SearchEntry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		fields := make(map[string]string, len(hit.Fields))
		for k, v := range hit.Fields {
			fields[k] = fieldString(v)
		}
		entries = append(entries, db.SearchEntry{ID: hit.ID, Score: hit.Score, Fields: fields})
	}

	return &db.SearchResult{Total: int(res.Total), Entries: entries}, nil
}

// buildQuery returns nil when nothing searchable is left after sanitizing.
func buildQuery(q *db.TextQuery) query.Query {
	p := q.Prepare()
	if p.IsEmpty() {
		return nil
	}

	fields := q.Fields
	if len(fields) == 0 {
		fields = defaultFields
	}

	var text []query.Query
	for _, f := range fields {
		phrase := bleve.NewMatchPhraseQuery(p.Phrase)
		phrase.SetField(f)
		text = append(text, phrase)

		if !p.Prefix {
			continue
		}
		for _, t := range p.Terms {
			t = strings.ToLower(t)
			if p.Suffix {
				wq := bleve.NewWildcardQuery("*" + t + "*")
				wq.SetField(f)
				text = append(text, wq)
				continue
			}
			pq := bleve.NewPrefixQuery(t)
			pq.SetField(f)
			text = append(text, pq)
		}
	}

	textQuery := bleve.NewDisjunctionQuery(text...)
	if len(q.Types) == 0 {
		return textQuery
	}

	types := make([]query.Query, 0, len(q.Types))
	for _, t := range q.Types {
		tq := bleve.NewTermQuery(t)
		tq.SetField(db.FieldType)
		types = append(types, tq)
	}
	return bleve.NewConjunctionQuery(bleve.NewDisjunctionQuery(types...), textQuery)
}

func fieldString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		parts := make([]string, 0, len(x))
		for _, p := range x {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}
