package domain

// Realm names. Users hold user records only; the catalog holds every other type.
const (
	RealmUsers   = "users"
	RealmCatalog = "catalog"
)
