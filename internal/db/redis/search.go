package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// SearchText runs a full-text search via FT.SEARCH ... WITHSCORES.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	queryStr := buildQuery(q)
	if queryStr == "" {
		return &db.SearchResult{}, nil
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(
		q.Index, queryStr,
		"WITHSCORES",
		"LIMIT", "0", strconv.Itoa(q.Limit),
		"DIALECT", "2",
	).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "no such index") || isRedisErr(err, "unknown index name") {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return s.parseResult(raw)
}

// buildQuery renders the RediSearch query string, empty when nothing
// searchable is left after sanitizing.
func buildQuery(q *db.TextQuery) string {
	p := q.Prepare()
	if p.IsEmpty() {
		return ""
	}

	var text string
	if p.Prefix {
		terms := make([]string, 0, len(p.Terms))
		for _, t := range p.Terms {
			term := escapeQuery(t) + "*"
			if p.Suffix {
				term = "*" + term
			}
			terms = append(terms, term)
		}
		text = "(" + strings.Join(terms, "|") + `|"` + escapeQuery(p.Phrase) + `")`
	} else {
		text = `("` + escapeQuery(p.Phrase) + `")`
	}

	if len(q.Fields) > 0 {
		text = "@" + strings.Join(q.Fields, "|") + ":" + text
	}

	if len(q.Types) == 0 {
		return text
	}

	types := make([]string, len(q.Types))
	for i, t := range q.Types {
		types[i] = tagEscaper.Replace(t)
	}
	return fmt.Sprintf("@%s:{%s} %s", db.FieldType, strings.Join(types, "|"), text)
}

// --- Result parsing ---

func (s *Store) parseResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/3)
	// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		m := parseFieldPairs(fields)
		id := m[db.FieldID]
		if id == "" {
			id = strings.TrimPrefix(key, s.keyPrefix)
		}

		entries = append(entries, db.SearchEntry{ID: id, Score: score, Fields: m})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
