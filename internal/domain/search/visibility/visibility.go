// Package visibility decides which search hits a user may see.
package visibility

import (
	"strings"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
)

// Policy is a realm specific visibility predicate.
type Policy interface {
	IsVisible(r result.Result, u domain.User) bool
}

// Func adapts a plain function to Policy.
type Func func(r result.Result, u domain.User) bool

// IsVisible calls f.
func (f Func) IsVisible(r result.Result, u domain.User) bool { return f(r, u) }

// AllowAll shows every hit. Used for the users realm.
type AllowAll struct{}

// IsVisible always returns true.
func (AllowAll) IsVisible(result.Result, domain.User) bool { return true }

// Project visibility levels.
const (
	Private                   = "PRIVATE"
	MeAndModerators           = "ME_AND_MODERATORS"
	BusinessUnitAndModerators = "BUISNESSUNIT_AND_MODERATORS"
	Everyone                  = "EVERYONE"
)

// Project hit attributes read by the Projects policy.
const (
	AttrVisibility         = "visibility"
	AttrCreatedBy          = "createdBy"
	AttrLeadArchitect      = "leadArchitect"
	AttrProjectResponsible = "projectResponsible"
	AttrModerators         = "moderators"
	AttrContributors       = "contributors"
	AttrBusinessUnit       = "businessUnit"
)

// Projects applies the SW360 project visibility rules to catalog hits.
// Hits of any other type are visible.
type Projects struct{}

// IsVisible reports whether u may see r.
func (Projects) IsVisible(r result.Result, u domain.User) bool {
	if r.Type() != domain.TypeProject {
		return true
	}

	switch r.Attribute(AttrVisibility) {
	case Private:
		return isCreator(r, u)
	case MeAndModerators:
		return isInvolved(r, u)
	case BusinessUnitAndModerators:
		if isInvolved(r, u) || u.IsAdmin() {
			return true
		}
		bu := r.Attribute(AttrBusinessUnit)
		return bu != "" && domain.BusinessUnitOf(bu) == u.BusinessUnit()
	default:
		return true
	}
}

func isCreator(r result.Result, u domain.User) bool {
	return u.Email != "" && r.Attribute(AttrCreatedBy) == u.Email
}

func isInvolved(r result.Result, u domain.User) bool {
	if u.Email == "" {
		return false
	}
	if isCreator(r, u) ||
		r.Attribute(AttrLeadArchitect) == u.Email ||
		r.Attribute(AttrProjectResponsible) == u.Email {
		return true
	}
	return listContains(r.Attribute(AttrModerators), u.Email) ||
		listContains(r.Attribute(AttrContributors), u.Email)
}

// listContains checks a comma separated attribute for an exact entry.
func listContains(list, email string) bool {
	if email == "" {
		return false
	}
	for _, e := range strings.Split(list, ",") {
		if strings.TrimSpace(e) == email {
			return true
		}
	}
	return false
}
