// Package batch holds per-document outcomes of bulk indexing.
package batch

// ItemStatus is the processing outcome of a single document.
type ItemStatus string

// Item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of indexing one document.
type Result struct {
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful result.
func NewOK(id string) Result { return Result{id: id, status: StatusOK} }

// NewError creates a failed result.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// ID returns the document identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts outcomes of a bulk load.
type Summary struct {
	OK     int
	Failed int
	// FirstErr is the error of the first failed document, nil when none failed.
	FirstErr error
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.status == StatusOK {
			s.OK++
			continue
		}
		s.Failed++
		if s.FirstErr == nil {
			s.FirstErr = r.err
		}
	}
	return s
}
