package db

import "strings"

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Prefix adds key prefixes to the index.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Tag adds exact-match keyword fields.
func (b *IndexBuilder) Tag(names ...string) *IndexBuilder {
	return b.add(IndexFieldTag, names)
}

// Text adds full-text fields.
func (b *IndexBuilder) Text(names ...string) *IndexBuilder {
	return b.add(IndexFieldText, names)
}

// Stored adds fields that are returned with hits but never matched.
func (b *IndexBuilder) Stored(names ...string) *IndexBuilder {
	return b.add(IndexFieldStored, names)
}

func (b *IndexBuilder) add(t IndexFieldType, names []string) *IndexBuilder {
	for _, n := range names {
		b.def.Fields = append(b.def.Fields, IndexField{Name: n, Type: t})
	}
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a debug representation of the schema.
func (idx *IndexDefinition) String() string {
	parts := []string{"INDEX", idx.Name}
	if len(idx.Prefixes) > 0 {
		parts = append(parts, "PREFIX")
		parts = append(parts, idx.Prefixes...)
	}
	parts = append(parts, "SCHEMA")
	for _, f := range idx.Fields {
		parts = append(parts, f.Name)
		switch f.Type {
		case IndexFieldText:
			parts = append(parts, "TEXT")
		case IndexFieldTag:
			parts = append(parts, "TAG")
		case IndexFieldStored:
			parts = append(parts, "STORED")
		}
	}
	return strings.Join(parts, " ")
}

// DocumentIndex is the schema shared by both realms: type tag, the three
// searchable name fields, and the attributes read for display names and
// visibility.
func DocumentIndex(name string, prefixes ...string) *IndexBuilder {
	return NewIndex(name).
		Prefix(prefixes...).
		Tag(FieldID, FieldType).
		Text("name", "fullname", "title").
		Stored("email", "text", "version",
			"visibility", "createdBy", "leadArchitect", "projectResponsible",
			"moderators", "contributors", "businessUnit")
}
