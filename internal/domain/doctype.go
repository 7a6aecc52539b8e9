package domain

// Document type tags stored in the type field of every indexed document.
const (
	TypeObligation   = "obligation"
	TypeTodo         = "todo"
	TypeRiskCategory = "riskCategory"
	TypeRisk         = "risk"
	TypeLicenseType  = "licenseType"
	TypeLicense      = "license"
	TypeVendor       = "vendor"
	TypeUser         = "user"
	TypeComponent    = "component"
	TypeRelease      = "release"
	TypeAttachment   = "attachment"
	TypeProject      = "project"
	TypeModeration   = "moderation"
	TypePackage      = "package"
)

// Indexed text fields a query can be restricted to.
const (
	FieldName     = "name"
	FieldFullname = "fullname"
	FieldTitle    = "title"
)

var knownTypes = map[string]struct{}{
	TypeObligation: {}, TypeTodo: {}, TypeRiskCategory: {}, TypeRisk: {},
	TypeLicenseType: {}, TypeLicense: {}, TypeVendor: {}, TypeUser: {},
	TypeComponent: {}, TypeRelease: {}, TypeAttachment: {}, TypeProject: {},
	TypeModeration: {}, TypePackage: {},
}

// IsKnownType reports whether t is one of the document type tags.
func IsKnownType(t string) bool {
	_, ok := knownTypes[t]
	return ok
}

// NameFields maps a document type to the fields that make up its display name.
type NameFields map[string][]string

// DefaultNameFields returns the display name lookup used by SW360.
func DefaultNameFields() NameFields {
	return NameFields{
		TypeLicense:    {"fullname"},
		TypeTodo:       {"text"},
		TypeObligation: {"name"},
		TypeUser:       {"email"},
		TypeVendor:     {"fullname"},
		TypeComponent:  {"name"},
		TypeRelease:    {"name", "version"},
		TypeProject:    {"name"},
		TypePackage:    {"name"},
	}
}

// SearchFields returns the indexed fields to query for a type mask.
// An empty mask searches name, fullname and title.
func SearchFields(types []string) []string {
	if len(types) == 0 {
		return []string{FieldName, FieldFullname, FieldTitle}
	}

	var fields []string
	seen := make(map[string]bool, 3)
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	for _, t := range types {
		switch t {
		case TypeProject, TypeComponent, TypeRelease, TypePackage:
			add(FieldName)
		case TypeLicense, TypeUser, TypeVendor:
			add(FieldFullname)
		case TypeObligation:
			add(FieldTitle)
		}
	}
	return fields
}
