package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// CreateIndex creates an FT index over the realm's hashes. Stored fields
// are skipped: every hash field is returned by FT.SEARCH anyway.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

func buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	args := []string{idx.Name, "ON", "HASH"}

	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}

	args = append(args, "SCHEMA")

	n := 0
	for _, f := range idx.Fields {
		switch f.Type {
		case db.IndexFieldText:
			args = append(args, f.Name, "TEXT")
		case db.IndexFieldTag:
			args = append(args, f.Name, "TAG", "CASESENSITIVE")
		case db.IndexFieldStored:
			continue
		default:
			return nil, errors.New("unknown field type")
		}
		n++
	}
	if n == 0 {
		return nil, errors.New("at least one searchable field is required")
	}

	return args, nil
}
