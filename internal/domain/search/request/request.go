package request

import (
	"fmt"
	"slices"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/typemask"
)

// Request is a validated search query.
type Request struct {
	text string
	mask typemask.Mask
}

// New validates search parameters. A nil text is invalid input; an empty
// text is valid and yields no results. A nil mask means no type restriction.
func New(text *string, mask []string) (Request, error) {
	if text == nil {
		return Request{}, fmt.Errorf("search text is required: %w", domain.ErrInvalidInput)
	}
	return Request{text: *text, mask: slices.Clone(typemask.Mask(mask))}, nil
}

// FromText builds a request with no type restriction from a present text.
func FromText(text string, mask ...string) Request {
	r, _ := New(&text, mask)
	return r
}

// Text returns the raw search text.
func (r *Request) Text() string { return r.text }

// Mask returns the type mask.
func (r *Request) Mask() typemask.Mask { return r.mask }

// IsEmpty reports whether there is nothing to search for.
func (r *Request) IsEmpty() bool { return r.text == "" }
