package catalog

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingContext means a course header or section row arrived before
	// the department or course it belongs to.
	ErrMissingContext = errors.New("missing department or course context")
	// ErrNoResults is returned by a PageSource when the listing has no
	// page metadata, i.e. the search matched nothing.
	ErrNoResults = errors.New("no classes found")
	// ErrTableMissing is returned by a PageSource when the results table
	// never appeared on the page.
	ErrTableMissing = errors.New("results table missing")
	// ErrPageOrder is returned when a source reports a page other than the
	// one requested.
	ErrPageOrder = errors.New("page out of order")
)

type ContextError struct {
	Kind       RowKind
	Department string
	Course     string
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%v: %v with department %q course %q", ErrMissingContext, e.Kind, e.Department, e.Course)
}

func (e *ContextError) Unwrap() error { return ErrMissingContext }

type PageTimeoutError struct {
	Page    int
	Timeout time.Duration
	Err     error
}

func (e *PageTimeoutError) Error() string {
	return fmt.Sprintf("page %d not available after %v: %v", e.Page, e.Timeout, e.Err)
}

func (e *PageTimeoutError) Unwrap() error { return e.Err }
