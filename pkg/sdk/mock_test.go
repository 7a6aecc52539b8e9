package sw360search

import (
	"context"

	"github.com/eclipse-sw360/sw360-search/internal/db"
	"github.com/eclipse-sw360/sw360-search/internal/domain"
	dombatch "github.com/eclipse-sw360/sw360-search/internal/domain/batch"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/request"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	healthuc "github.com/eclipse-sw360/sw360-search/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	fn func(ctx context.Context, req request.Request, user domain.User) ([]result.Result, error)
}

func (m *mockSearchUC) SearchFiltered(
	ctx context.Context, req request.Request, user domain.User,
) ([]result.Result, error) {
	return m.fn(ctx, req, user)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	fn func(ctx context.Context, docs []db.Document) []dombatch.Result
}

func (m *mockIndexUC) Index(ctx context.Context, docs []db.Document) []dombatch.Result {
	return m.fn(ctx, docs)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
