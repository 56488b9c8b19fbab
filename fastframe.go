// Package fastframe implements a parallel, single-pass CSV-to-columnar
// reader: it ingests a CSV byte source and produces an in-memory
// columnar table suitable for analytic workloads, using a bounded
// worker pool to parse disjoint, line-aligned regions of the input
// concurrently.
package fastframe

import (
	"github.com/fastframe/fastframe/internal/coltype"
	"github.com/fastframe/fastframe/internal/ferrors"
	"github.com/fastframe/fastframe/internal/frame"
	"github.com/fastframe/fastframe/internal/reader"
	"github.com/fastframe/fastframe/source"

	"golang.org/x/sync/errgroup"
)

// Re-exported so callers never need to import the internal packages
// directly.
type (
	DataType = coltype.DataType
	Field    = coltype.Field
	Schema   = coltype.Schema
	Encoding = coltype.Encoding
	Column   = coltype.Column
	Frame    = frame.Frame

	Predicate   = reader.Predicate
	Aggregation = reader.Aggregation

	ParseError          = ferrors.ParseError
	SchemaMismatchError = ferrors.SchemaMismatchError
	PredicateError      = ferrors.PredicateError
	AggregationError    = ferrors.AggregationError
)

var (
	ErrInputExhausted = ferrors.ErrInputExhausted
	ErrConfiguration  = ferrors.ErrConfiguration
)

const (
	Int32    = coltype.Int32
	Int64    = coltype.Int64
	Uint32   = coltype.Uint32
	Uint64   = coltype.Uint64
	Float32  = coltype.Float32
	Float64  = coltype.Float64
	Bool     = coltype.Bool
	String   = coltype.String
	Date     = coltype.Date
	Datetime = coltype.Datetime

	UTF8        = coltype.UTF8
	LossyLatin1 = coltype.LossyLatin1
)

// Config is the full Reader Configuration: the options of the ingest
// pipeline itself, plus the external collaborators the core consumes
// (a byte source, a schema, and optionally a predicate/aggregations/
// worker pool).
type Config struct {
	// Source supplies the raw bytes to ingest. Required unless Bytes
	// is set instead.
	Source source.Region
	// Bytes is a convenience alternative to Source for callers that
	// already hold an in-memory buffer; it is wrapped with
	// source.FromBytes. Ignored if Source is set.
	Bytes []byte

	// Schema names and types every column of the input. Schema
	// inference is out of scope; callers supply it.
	Schema Schema

	HasHeader          bool
	Delimiter          byte
	SkipRows           int
	NRows              int
	IgnoreParserErrors bool
	Encoding           Encoding
	NThreads           int
	SampleSize         int
	ChunkSize          int
	Projection         []int

	Predicate    Predicate
	Aggregations []Aggregation
	Pool         *errgroup.Group
	Verbose      bool
}

// Read runs the ingest pipeline against cfg and returns the resulting
// frame, or a typed error (see ParseError, SchemaMismatchError,
// PredicateError, AggregationError, ErrInputExhausted,
// ErrConfiguration).
func Read(cfg Config) (*Frame, error) {
	region := cfg.Source
	if region == nil {
		if cfg.Bytes == nil {
			return nil, ErrConfiguration
		}
		region = source.FromBytes(cfg.Bytes)
	}

	return reader.Read(region.Bytes(), reader.Config{
		HasHeader:          cfg.HasHeader,
		Delimiter:          cfg.Delimiter,
		SkipRows:           cfg.SkipRows,
		NRows:              cfg.NRows,
		IgnoreParserErrors: cfg.IgnoreParserErrors,
		Encoding:           cfg.Encoding,
		NThreads:           cfg.NThreads,
		SampleSize:         cfg.SampleSize,
		ChunkSize:          cfg.ChunkSize,
		Projection:         cfg.Projection,
		Schema:             cfg.Schema,
		Predicate:          cfg.Predicate,
		Aggregations:       cfg.Aggregations,
		Pool:               cfg.Pool,
		Verbose:            cfg.Verbose,
	})
}
