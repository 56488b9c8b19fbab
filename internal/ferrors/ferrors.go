// Package ferrors defines the error taxonomy shared by the lineparse and
// reader packages and re-exported by the fastframe package.
package ferrors

import (
	"errors"
	"fmt"
)

// ErrInputExhausted is returned when the preamble-skip phase (BOM,
// header, skip_rows) runs out of bytes before it is satisfied.
var ErrInputExhausted = errors.New("fastframe: not enough lines to skip")

// ErrConfiguration is returned when a Read call is missing a required
// input: neither a byte source nor an in-memory buffer was supplied, or
// the schema is empty.
var ErrConfiguration = errors.New("fastframe: no byte source or reader configured")

// ParseError reports a field that failed to decode under its column's
// type.
type ParseError struct {
	Line   int64
	Column string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fastframe: parse error at line %d, column %q: %s", e.Line, e.Column, e.Reason)
}

// SchemaMismatchError reports a projection entry that refers to no
// schema column: an index outside the schema, named in Column as
// "index N".
type SchemaMismatchError struct {
	Column string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("fastframe: column %q not found in schema", e.Column)
}

// PredicateError reports a row predicate that returned a result that
// does not conform to its contract (wrong length, non-boolean).
type PredicateError struct {
	Reason string
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("fastframe: predicate error: %s", e.Reason)
}

// AggregationError reports a post-aggregation that returned a
// non-conforming result.
type AggregationError struct {
	Reason string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("fastframe: aggregation error: %s", e.Reason)
}
