package postgres

import (
	"fmt"
	"strings"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

const textSearchConfig = "simple"

// vectorExpr builds an immutable tsvector expression over the given jsonb fields.
func vectorExpr(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("coalesce(fields->>%s, '')", sqlLiteral(f))
	}
	return fmt.Sprintf("to_tsvector('%s', %s)", textSearchConfig, strings.Join(parts, " || ' ' || "))
}

// buildSearch returns the ranked search statement and its arguments.
// Restricted fields are vectorized on the fly; otherwise the stored fts column is used.
func buildSearch(table string, q *db.TextQuery, p db.PreparedText) (string, []any) {
	vector := "fts"
	if len(q.Fields) > 0 {
		vector = vectorExpr(q.Fields)
	}

	var (
		args    []any
		tsquery string
	)
	args = append(args, p.Phrase)
	if p.Prefix {
		args = append(args, prefixQuery(p.Terms))
		tsquery = fmt.Sprintf("(phraseto_tsquery('%[1]s', $1) || to_tsquery('%[1]s', $2))", textSearchConfig)
	} else {
		tsquery = fmt.Sprintf("phraseto_tsquery('%s', $1)", textSearchConfig)
	}

	where := fmt.Sprintf("%s @@ query", vector)
	if len(q.Types) > 0 {
		args = append(args, q.Types)
		where += fmt.Sprintf(" AND type = ANY($%d)", len(args))
	}

	args = append(args, q.Limit)
	stmt := fmt.Sprintf(`SELECT id, fields, ts_rank(%s, query) AS rank, count(*) OVER () AS total
		FROM %s, %s AS query
		WHERE %s
		ORDER BY rank DESC
		LIMIT $%d`, vector, quoteIdent(table), tsquery, where, len(args))

	return stmt, args
}

// prefixQuery ORs the terms as quoted prefix lexemes: 'a':* | 'b':*.
func prefixQuery(terms []string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = lexeme(t) + ":*"
	}
	return strings.Join(parts, " | ")
}

func sqlLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// lexeme quotes a tsquery operand so operator characters lose their meaning.
func lexeme(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
