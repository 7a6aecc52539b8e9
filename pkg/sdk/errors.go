package sw360search

import "github.com/eclipse-sw360/sw360-search/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput    = domain.ErrInvalidInput
	ErrBackend         = domain.ErrBackend
	ErrUnknownRealm    = domain.ErrUnknownRealm
	ErrInvalidDocument = domain.ErrInvalidDocument
)
