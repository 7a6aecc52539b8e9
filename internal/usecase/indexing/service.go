package indexing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eclipse-sw360/sw360-search/internal/db"
	"github.com/eclipse-sw360/sw360-search/internal/domain"
	dombatch "github.com/eclipse-sw360/sw360-search/internal/domain/batch"
)

// DefaultChunkSize is the number of documents written per store call.
const DefaultChunkSize = 500

// Service loads documents into one realm's index.
type Service struct {
	realm     string
	store     Store
	def       *db.IndexDefinition
	accepts   func(typ string) bool
	chunkSize int
	logger    *zap.Logger
}

// New creates an indexing service for a realm. accepts restricts the
// document types the realm takes; nil accepts every known type.
func New(realm string, store Store, def *db.IndexDefinition, accepts func(string) bool, logger *zap.Logger) *Service {
	if accepts == nil {
		accepts = domain.IsKnownType
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		realm: realm, store: store, def: def,
		accepts: accepts, chunkSize: DefaultChunkSize, logger: logger,
	}
}

// WithChunkSize configures the number of documents per store call.
func (s *Service) WithChunkSize(n int) *Service {
	if n > 0 {
		s.chunkSize = n
	}
	return s
}

// EnsureIndex creates the index unless it already exists.
func (s *Service) EnsureIndex(ctx context.Context) error {
	err := s.store.CreateIndex(ctx, s.def)
	if err == nil {
		s.logger.Info("Index created", zap.String("realm", s.realm), zap.String("index", s.def.Name))
		return nil
	}
	if errors.Is(err, db.ErrIndexExists) {
		return nil
	}
	return fmt.Errorf("create index %s: %w", s.def.Name, err)
}

// Index validates and stores documents, reporting one result per input document.
func (s *Service) Index(ctx context.Context, docs []db.Document) []dombatch.Result {
	results := make([]dombatch.Result, len(docs))

	valid := make([]db.Document, 0, len(docs))
	validIdx := make([]int, 0, len(docs))
	for i := range docs {
		if err := s.validate(&docs[i]); err != nil {
			results[i] = dombatch.NewError(docs[i].ID, err)
			continue
		}
		valid = append(valid, docs[i])
		validIdx = append(validIdx, i)
	}

	for start := 0; start < len(valid); start += s.chunkSize {
		end := min(start+s.chunkSize, len(valid))
		err := s.store.PutDocuments(ctx, s.def.Name, valid[start:end])
		for _, i := range validIdx[start:end] {
			if err != nil {
				results[i] = dombatch.NewError(docs[i].ID, fmt.Errorf("put documents: %w", err))
			} else {
				results[i] = dombatch.NewOK(docs[i].ID)
			}
		}
	}

	sum := dombatch.Summarize(results)
	s.logger.Info("Documents indexed",
		zap.String("realm", s.realm),
		zap.Int("ok", sum.OK),
		zap.Int("failed", sum.Failed),
	)
	return results
}

func (s *Service) validate(d *db.Document) error {
	if d.ID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidDocument)
	}
	if !domain.IsKnownType(d.Type) {
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidDocument, d.Type)
	}
	if !s.accepts(d.Type) {
		return fmt.Errorf("%w: type %q does not belong to realm %s", domain.ErrInvalidDocument, d.Type, s.realm)
	}
	for k := range d.Fields {
		if k == db.FieldID || k == db.FieldType {
			return fmt.Errorf("%w: reserved field %q", domain.ErrInvalidDocument, k)
		}
	}
	return nil
}

// UsersOnly accepts user documents.
func UsersOnly(typ string) bool { return typ == domain.TypeUser }

// CatalogOnly accepts every known type except users.
func CatalogOnly(typ string) bool { return typ != domain.TypeUser && domain.IsKnownType(typ) }
