// Package postgres implements db.Store on PostgreSQL full-text search.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const undefinedTable = "42P01"

// Config holds PostgreSQL connection settings.
type Config struct {
	DSN string
	// Tables maps index names to table names. Unmapped indexes use "<index>_documents".
	Tables map[string]string
}

// Store keeps one table per index with a generated tsvector column.
type Store struct {
	db     *sql.DB
	tables map[string]string
}

// NewStore opens a connection pool. No connection is made until first use.
func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewStoreFromDB(conn, cfg.Tables), nil
}

// NewStoreFromDB wraps an existing pool.
func NewStoreFromDB(conn *sql.DB, tables map[string]string) *Store {
	t := make(map[string]string, len(tables))
	for k, v := range tables {
		t[k] = v
	}
	return &Store{db: conn, tables: t}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() {
	_ = s.db.Close()
}

func (s *Store) table(index string) string {
	if t, ok := s.tables[index]; ok && t != "" {
		return t
	}
	return strings.ReplaceAll(index, "-", "_") + "_documents"
}

// CreateIndex creates the document table, its tsvector column and GIN index.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	text := def.FieldsOf(db.IndexFieldText)
	if len(text) == 0 {
		return &db.Error{Op: db.OpCreateIndex, Err: errors.New("at least one text field is required")}
	}

	exists, err := s.IndexExists(ctx, def.Name)
	if err != nil {
		return err
	}
	if exists {
		return db.ErrIndexExists
	}

	table := s.table(def.Name)
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE %s (
			id text PRIMARY KEY,
			type text NOT NULL,
			fields jsonb NOT NULL,
			fts tsvector GENERATED ALWAYS AS (%s) STORED
		)`, quoteIdent(table), vectorExpr(text)),
		fmt.Sprintf(`CREATE INDEX %s ON %s USING gin (fts)`, quoteIdent(table+"_fts_idx"), quoteIdent(table)),
		fmt.Sprintf(`CREATE INDEX %s ON %s (type)`, quoteIdent(table+"_type_idx"), quoteIdent(table)),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return &db.Error{Op: db.OpCreateIndex, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists reports whether the index table exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT to_regclass($1) IS NOT NULL`, quoteIdent(s.table(name))).Scan(&exists)
	if err != nil {
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return exists, nil
}

// PutDocuments upserts documents in one transaction.
func (s *Store) PutDocuments(ctx context.Context, index string, docs []db.Document) error {
	if len(docs) == 0 {
		return nil
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (id, type, fields) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET type = EXCLUDED.type, fields = EXCLUDED.fields`,
		quoteIdent(s.table(index)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for i := range docs {
		fields, err := json.Marshal(docs[i].Flatten())
		if err != nil {
			return &db.Error{Op: db.OpPut, Err: fmt.Errorf("marshal %s: %w", docs[i].ID, err)}
		}
		if _, err := tx.ExecContext(ctx, stmt, docs[i].ID, docs[i].Type, string(fields)); err != nil {
			return &db.Error{Op: db.OpPut, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	return nil
}

// SearchText ranks matching rows with ts_rank.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	p := q.Prepare()
	if p.IsEmpty() {
		return &db.SearchResult{}, nil
	}

	query, args := buildSearch(s.table(q.Index), q, p)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer rows.Close()

	res := &db.SearchResult{}
	for rows.Next() {
		var (
			e   db.SearchEntry
			raw []byte
		)
		if err := rows.Scan(&e.ID, &raw, &e.Score, &res.Total); err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("scan: %w", err)}
		}
		if err := json.Unmarshal(raw, &e.Fields); err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode fields of %s: %w", e.ID, err)}
		}
		res.Entries = append(res.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return res, nil
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTable
}
