// Package typemask decides which realms a type filter reaches.
package typemask

import (
	"slices"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
)

// Mask is the caller's list of requested document types. Empty means all types.
type Mask []string

// QueriesUsers reports whether the users realm must be queried:
// the mask is empty or contains the user type.
func (m Mask) QueriesUsers() bool {
	return len(m) == 0 || slices.Contains(m, domain.TypeUser)
}

// QueriesCatalog reports whether the catalog realm must be queried:
// the mask is empty, its first entry is not the user type, or it has more than one entry.
func (m Mask) QueriesCatalog() bool {
	return len(m) == 0 || m[0] != domain.TypeUser || len(m) > 1
}

// UsersFilter is the type filter sent to the users realm.
func UsersFilter() []string {
	return []string{domain.TypeUser}
}

// CatalogFilter is the type filter sent to the catalog realm: the mask as given.
func (m Mask) CatalogFilter() []string {
	if len(m) == 0 {
		return nil
	}
	return slices.Clone(m)
}
