package db

import (
	"fmt"
	"regexp"
	"strings"
)

// TextQuery is the input for a full-text search against one index.
type TextQuery struct {
	Index string
	Text  string
	// Wildcard matches unquoted terms as prefixes.
	Wildcard bool
	// LeadingWildcard also matches unquoted terms as suffixes. Drivers that
	// cannot express it fall back to prefix matching.
	LeadingWildcard bool
	// Types restricts hits to these type tags. Empty means any type.
	Types []string
	// Fields restricts matching to these text fields. Empty means all of them.
	Fields []string
	Limit  int
}

// Validate checks the query for required parameters.
func (q *TextQuery) Validate() error {
	if q.Index == "" {
		return fmt.Errorf("%w: index name is required", ErrInvalidQuery)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidQuery)
	}
	return nil
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	ID     string
	Score  float64
	Fields map[string]string
}

// PreparedText is search text reduced to what every driver can express.
type PreparedText struct {
	// Phrase is the sanitized text, matched as a phrase.
	Phrase string
	// Terms are the phrase tokens, matched as prefixes when Prefix is set.
	Terms  []string
	Prefix bool
	// Suffix requests leading wildcards on Terms.
	Suffix bool
}

// IsEmpty reports whether nothing searchable survived sanitizing.
func (p PreparedText) IsEmpty() bool { return p.Phrase == "" }

// Prepare sanitizes the query text. Quoted text is always an exact phrase;
// otherwise terms are prefix-matched when the query asks for wildcards.
func (q *TextQuery) Prepare() PreparedText {
	text := q.Text
	if IsQuoted(text) {
		phrase := Sanitize(text[1 : len(text)-1])
		return PreparedText{Phrase: phrase, Terms: strings.Fields(phrase)}
	}
	phrase := Sanitize(text)
	return PreparedText{
		Phrase: phrase,
		Terms:  strings.Fields(phrase),
		Prefix: q.Wildcard,
		Suffix: q.Wildcard && q.LeadingWildcard,
	}
}

// IsQuoted reports whether s is wrapped in double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}

var (
	querySyntax = regexp.MustCompile(`[\\+\-!~*?"^:(){}\[\]/@]|&&|\|\|`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Sanitize replaces query syntax characters with spaces and collapses whitespace.
func Sanitize(s string) string {
	s = querySyntax.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
