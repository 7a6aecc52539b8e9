package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldText is a tokenized full-text field.
	IndexFieldText IndexFieldType = iota
	// IndexFieldTag is an exact-match keyword field.
	IndexFieldTag
	// IndexFieldStored is kept with the document but not searchable.
	IndexFieldStored
)

// IndexField describes a single field in an index schema.
type IndexField struct {
	Name string
	Type IndexFieldType
}

// IndexDefinition is a complete index definition.
type IndexDefinition struct {
	Name     string
	Prefixes []string // key prefixes, for stores that index keyspaces
	Fields   []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}

// FieldsOf returns the names of fields with type t, in schema order.
func (idx *IndexDefinition) FieldsOf(t IndexFieldType) []string {
	var names []string
	for _, f := range idx.Fields {
		if f.Type == t {
			names = append(names, f.Name)
		}
	}
	return names
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
