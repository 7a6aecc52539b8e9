package db

import "errors"

// Sentinel errors for backend operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
	ErrInvalidQuery  = errors.New("db: invalid query")
)

// Op names used for error context.
const (
	OpPing        = "ping"
	OpCreateIndex = "create_index"
	OpIndexInfo   = "index_info"
	OpPut         = "put_documents"
	OpSearch      = "search"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
