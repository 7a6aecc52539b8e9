package app

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eclipse-sw360/sw360-search/internal/config"
	"github.com/eclipse-sw360/sw360-search/internal/db"
	dbBleve "github.com/eclipse-sw360/sw360-search/internal/db/bleve"
	"github.com/eclipse-sw360/sw360-search/internal/domain"
	dombatch "github.com/eclipse-sw360/sw360-search/internal/domain/batch"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/request"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	healthuc "github.com/eclipse-sw360/sw360-search/internal/usecase/health"
)

func testConfig() config.Config {
	cfg := config.Config{
		HTTP: config.HTTPConfig{Port: 8080},
		Realms: config.RealmsConfig{
			Users:   config.RealmConfig{Driver: config.DriverBleve},
			Catalog: config.RealmConfig{Driver: config.DriverBleve},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	users, err := dbBleve.NewStore(dbBleve.Config{})
	if err != nil {
		t.Fatalf("users store: %v", err)
	}
	catalog, err := dbBleve.NewStore(dbBleve.Config{})
	if err != nil {
		t.Fatalf("catalog store: %v", err)
	}

	cfg := testConfig()
	a := Wire(&cfg, users, catalog, nil)
	t.Cleanup(a.Close)

	ctx := context.Background()
	if err := a.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	index(t, a, domain.RealmUsers, []db.Document{
		{ID: "u1", Type: domain.TypeUser, Fields: map[string]string{"fullname": "Jane Doe", "email": "jane@example.com"}},
	})
	index(t, a, domain.RealmCatalog, []db.Document{
		{ID: "c1", Type: domain.TypeComponent, Fields: map[string]string{"name": "OpenSSL"}},
		{ID: "p1", Type: domain.TypeProject, Fields: map[string]string{
			"name": "OpenSSL internal", "visibility": "PRIVATE", "createdBy": "bob@example.com",
		}},
		{ID: "p2", Type: domain.TypeProject, Fields: map[string]string{
			"name": "OpenSSL public", "visibility": "EVERYONE", "createdBy": "bob@example.com",
		}},
	})
	return a
}

func index(t *testing.T, a *App, realm string, docs []db.Document) {
	t.Helper()
	ix, err := a.Indexer(realm)
	if err != nil {
		t.Fatalf("Indexer(%s): %v", realm, err)
	}
	for _, r := range ix.Index(context.Background(), docs) {
		if r.Status() != dombatch.StatusOK {
			t.Fatalf("index %s: %v", r.ID(), r.Err())
		}
	}
}

func resultIDs(rs []result.Result) []string {
	out := make([]string, 0, len(rs))
	for i := range rs {
		out = append(out, rs[i].Realm()+"/"+rs[i].ID())
	}
	sort.Strings(out)
	return out
}

func TestApp_SearchAppliesCatalogVisibility(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	tests := []struct {
		name string
		user domain.User
		want []string
	}{
		{"other user", domain.User{Email: "jane@example.com"}, []string{"catalog/c1", "catalog/p2"}},
		{"creator", domain.User{Email: "bob@example.com"}, []string{"catalog/c1", "catalog/p1", "catalog/p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Search.SearchFiltered(ctx, request.FromText("openssl"), tt.user)
			if err != nil {
				t.Fatalf("SearchFiltered: %v", err)
			}
			if diff := cmp.Diff(tt.want, resultIDs(got)); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApp_SearchUsersRealm(t *testing.T) {
	a := newTestApp(t)

	got, err := a.Search.SearchFiltered(context.Background(),
		request.FromText("jane", domain.TypeUser), domain.User{})
	if err != nil {
		t.Fatalf("SearchFiltered: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got[0].Name() != "jane@example.com" || got[0].Realm() != domain.RealmUsers {
		t.Errorf("unexpected result: %s %s", got[0].Realm(), got[0].Name())
	}
}

func TestApp_IndexRejectsForeignType(t *testing.T) {
	a := newTestApp(t)
	ix, err := a.Indexer(domain.RealmCatalog)
	if err != nil {
		t.Fatalf("Indexer: %v", err)
	}

	res := ix.Index(context.Background(), []db.Document{
		{ID: "u2", Type: domain.TypeUser, Fields: map[string]string{"email": "x@example.com"}},
	})
	if res[0].Status() == dombatch.StatusOK || !errors.Is(res[0].Err(), domain.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", res[0].Err())
	}
}

func TestApp_UnknownRealm(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Indexer("projects"); !errors.Is(err, domain.ErrUnknownRealm) {
		t.Fatalf("expected ErrUnknownRealm, got %v", err)
	}
}

func TestApp_EnsureIndexesIdempotent(t *testing.T) {
	a := newTestApp(t)
	if err := a.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("second EnsureIndexes: %v", err)
	}
}

func TestApp_Health(t *testing.T) {
	a := newTestApp(t)
	report := a.Health.Check(context.Background())
	if report.Status != healthuc.Healthy {
		t.Fatalf("status = %s, want ok", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Errorf("checks = %v, want both realms", report.Checks)
	}
}

func TestPolicyFor(t *testing.T) {
	private := result.New(domain.RealmCatalog, "p", "p", domain.TypeProject, 1,
		map[string]string{"visibility": "PRIVATE"})

	if !policyFor(config.VisibilityAll).IsVisible(private, domain.User{}) {
		t.Error("all policy should show private project")
	}
	if policyFor(config.VisibilityProjects).IsVisible(private, domain.User{}) {
		t.Error("projects policy should hide private project from anonymous user")
	}
}
