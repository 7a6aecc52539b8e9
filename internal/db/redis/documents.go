package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// PutDocuments stores documents as hashes under the realm key prefix in a
// single DoMulti round-trip. The index name is implied by the prefix.
func (s *Store) PutDocuments(ctx context.Context, _ string, docs []db.Document) error {
	if len(docs) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(docs))
	for i := range docs {
		cmd := s.b().Hset().Key(s.key(docs[i].ID)).FieldValue()
		for k, v := range docs[i].Flatten() {
			cmd = cmd.FieldValue(k, v)
		}
		cmds[i] = cmd.Build()
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpPut, Err: fmt.Errorf("document %s: %w", docs[i].ID, err)}
		}
	}
	return nil
}
