package domain

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestBusinessUnitOf(t *testing.T) {
	tests := []struct {
		department string
		want       string
	}{
		{"DE PA RT ME NT", "DE PA RT"},
		{"DE PA RT", "DE PA RT"},
		{"  DE   PA  ", "DE PA"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BusinessUnitOf(tt.department); got != tt.want {
			t.Errorf("BusinessUnitOf(%q) = %q, want %q", tt.department, got, tt.want)
		}
	}
}

func TestUser_IsAdmin(t *testing.T) {
	for _, g := range []UserGroup{GroupClearingAdmin, GroupAdmin, GroupSW360Admin} {
		if !(User{Group: g}).IsAdmin() {
			t.Errorf("%s should be admin", g)
		}
	}
	for _, g := range []UserGroup{GroupUser, GroupClearingExpert, GroupECCAdmin, GroupSecurityAdmin, ""} {
		if (User{Group: g}).IsAdmin() {
			t.Errorf("%q should not be admin", g)
		}
	}
}

func TestSearchFields(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  []string
	}{
		{"empty mask", nil, []string{"name", "fullname", "title"}},
		{"components", []string{"component", "release"}, []string{"name"}},
		{"mixed", []string{"license", "project", "obligation", "user"}, []string{"fullname", "name", "title"}},
		{"unmapped", []string{"todo"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchFields(tt.types); !slices.Equal(got, tt.want) {
				t.Errorf("SearchFields(%v) = %v, want %v", tt.types, got, tt.want)
			}
		})
	}
}

func TestDefaultNameFields(t *testing.T) {
	nf := DefaultNameFields()
	if got := nf[TypeRelease]; !slices.Equal(got, []string{"name", "version"}) {
		t.Errorf("release name fields = %v", got)
	}
	if got := nf[TypeUser]; !slices.Equal(got, []string{"email"}) {
		t.Errorf("user name fields = %v", got)
	}
	if _, ok := nf[TypeAttachment]; ok {
		t.Error("attachment has no display name field")
	}
}

func TestIsKnownType(t *testing.T) {
	if !IsKnownType(TypeRiskCategory) {
		t.Error("riskCategory should be known")
	}
	if IsKnownType("document") {
		t.Error("document is not a type tag")
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("search: %w", NewBackendError("catalog", cause))

	if !errors.Is(err, ErrBackend) {
		t.Error("expected errors.Is(err, ErrBackend)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
	var be *BackendError
	if !errors.As(err, &be) || be.Realm != "catalog" {
		t.Errorf("errors.As failed: %v", be)
	}
}
