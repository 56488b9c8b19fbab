// Package reader implements the Coordinator: the state machine that
// trims a byte region's preamble, estimates row counts, splits the
// region into chunks, drives one Line Parser per chunk on a bounded
// worker pool, and reduces the resulting partial frames into a result.
package reader

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fastframe/fastframe/internal/bytescan"
	"github.com/fastframe/fastframe/internal/chunk"
	"github.com/fastframe/fastframe/internal/coltype"
	"github.com/fastframe/fastframe/internal/ferrors"
	"github.com/fastframe/fastframe/internal/frame"
	"github.com/fastframe/fastframe/internal/lineparse"
	"github.com/fastframe/fastframe/internal/rowstats"
)

// Predicate filters a partial frame during ingest. Evaluate must
// return a boolean slice the same length as f.Height; the frame's rows
// where the slice is false are dropped.
type Predicate interface {
	Evaluate(f *frame.Frame) ([]bool, error)
}

// Aggregation derives a single replacement column from the fully
// concatenated result frame. A configured list of Aggregations
// replaces the whole result frame with one column per aggregation, in
// list order.
type Aggregation interface {
	Finish(f *frame.Frame) (*coltype.Column, error)
}

// Config is the Reader Configuration of the ingest pipeline: every
// field is resolved to a concrete value before Read begins work.
type Config struct {
	HasHeader          bool
	Delimiter          byte
	SkipRows           int
	NRows              int // 0 means unbounded
	IgnoreParserErrors bool
	Encoding           coltype.Encoding
	NThreads           int // 0 resolves to runtime.NumCPU()
	SampleSize         int
	ChunkSize          int
	Projection         []int // indices into Schema; nil means every column

	Schema       coltype.Schema
	Predicate    Predicate
	Aggregations []Aggregation
	Pool         *errgroup.Group // used as given when non-nil; its limit is not compared with NThreads
	Verbose      bool
}

const (
	defaultSampleSize  = 1024
	defaultChunkSize   = 50_000
	fallbackTotalRows  = 128
	stringSafetyFactor = 1.2
)

func (c *Config) resolve() {
	if c.Delimiter == 0 {
		c.Delimiter = ','
	}
	if c.NThreads <= 0 {
		c.NThreads = runtime.NumCPU()
	}
	if c.SampleSize <= 0 {
		c.SampleSize = defaultSampleSize
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
}

func (c *Config) logf(format string, args ...any) {
	if !c.Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "fastframe: "+format+"\n", args...)
}

// Read runs the full Coordinator state machine over data and returns
// the resulting frame.
func Read(data []byte, cfg Config) (*frame.Frame, error) {
	cfg.resolve()
	if len(cfg.Schema) == 0 {
		return nil, ferrors.ErrConfiguration
	}

	// Prepare: ensure the buffer ends with a terminator.
	if len(data) > 0 {
		last := data[len(data)-1]
		if last != '\n' && last != '\r' {
			data = append(data, '\n')
		}
	}

	order, names, err := resolveProjection(cfg.Schema, cfg.Projection)
	if err != nil {
		return nil, err
	}

	data, linesConsumed, err := trimPreamble(data, &cfg)
	if err != nil {
		return nil, err
	}

	stats := rowstats.Collect(data, cfg.SampleSize)
	totalRows, estimated := stats.EstimateRows(len(data))
	if !estimated {
		totalRows = fallbackTotalRows
		cfg.logf("file has fewer than a sample's worth of lines, no statistics determined")
	} else {
		cfg.logf("line stats: mean=%.2f stddev=%.2f, estimated rows=%d", stats.Mean, stats.StdDev, totalRows)
	}

	if cfg.NRows > 0 {
		if cfg.NRows < totalRows {
			totalRows = cfg.NRows
		}
		if estimated {
			nBytes := int((stats.Mean + 1.1*stats.StdDev) * float64(cfg.NRows))
			if nBytes > 0 && nBytes < len(data) {
				if cut, ok := bytescan.NextLinePosition(data[nBytes:], len(cfg.Schema), cfg.Delimiter); ok {
					data = data[:nBytes+cut]
				}
			}
		}
	}

	chunkSize := cfg.ChunkSize
	if totalRows > 0 && chunkSize > totalRows {
		chunkSize = totalRows
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}
	nChunks := totalRows / chunkSize
	if nChunks < 1 {
		nChunks = 1
	}
	if nChunks > cfg.NThreads {
		nChunks = cfg.NThreads
	}

	localCapacity := totalRows / cfg.NThreads
	if localCapacity <= 0 {
		localCapacity = totalRows
	}
	if localCapacity <= 0 {
		localCapacity = 1
	}

	capTable := rowstats.NewCapacityTable(len(order))
	initialStrCap := localCapacity * 100
	for i, col := range order {
		if cfg.Schema[col].Type == coltype.String {
			capTable.Observe(i, initialStrCap)
		}
	}

	regions := chunk.Split(data, nChunks, len(cfg.Schema), cfg.Delimiter)
	cfg.logf("dispatching %d region(s) across up to %d thread(s), per-worker row capacity %d", len(regions), cfg.NThreads, localCapacity)

	parts, err := dispatch(data, regions, &cfg, order, names, capTable, linesConsumed, localCapacity)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return frame.New(order, names), nil
	}

	result := frame.Concat(parts)
	if cfg.NRows > 0 && result.Height > cfg.NRows {
		result = result.Truncate(cfg.NRows)
	}

	if len(cfg.Aggregations) > 0 {
		result, err = applyAggregations(result, cfg.Aggregations)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// applyAggregations replaces result with a new frame built entirely
// from each aggregation's output column, in list order — matching
// polars' as_df, which rebuilds its DataFrame from
// `aggregate.iter().map(|a| a.finish(&df)).collect()` rather than
// merging aggregation output back into the existing columns.
func applyAggregations(result *frame.Frame, aggs []Aggregation) (*frame.Frame, error) {
	cols := make([]*coltype.Column, len(aggs))
	height := result.Height
	for i, agg := range aggs {
		col, err := agg.Finish(result)
		if err != nil {
			return nil, &ferrors.AggregationError{Reason: err.Error()}
		}
		if col.Len != result.Height && col.Len != 1 {
			return nil, &ferrors.AggregationError{Reason: "aggregation result length does not match frame height"}
		}
		cols[i] = col
		if i == 0 {
			height = col.Len
		}
	}

	order := coltype.IdentityProjection(len(cols))
	names := make([]string, len(cols))
	for i := range names {
		if i < len(result.Names) {
			names[i] = result.Names[i]
		} else {
			names[i] = fmt.Sprintf("agg%d", i)
		}
	}

	out := frame.New(order, names)
	out.Height = height
	for i, col := range cols {
		out.Columns[i] = col
	}
	return out, nil
}

// resolveProjection validates and sorts the requested projection,
// defaulting to every schema column when none was given.
func resolveProjection(schema coltype.Schema, projection []int) (order []int, names []string, err error) {
	if len(projection) == 0 {
		order = coltype.IdentityProjection(len(schema))
	} else {
		order = append([]int(nil), projection...)
		sort.Ints(order)
	}
	names = make([]string, len(order))
	for i, col := range order {
		if col < 0 || col >= len(schema) {
			return nil, nil, &ferrors.SchemaMismatchError{Column: fmt.Sprintf("index %d", col)}
		}
		names[i] = schema[col].Name
	}
	return order, names, nil
}

// trimPreamble consumes the BOM, optional header line, and skip_rows
// data lines, returning the remaining bytes and the absolute line
// count consumed so worker line numbers can be made absolute.
func trimPreamble(data []byte, cfg *Config) ([]byte, int64, error) {
	data = bytescan.SkipBOM(data)

	var lines int64
	if cfg.HasHeader {
		if len(data) == 0 {
			return nil, 0, ferrors.ErrInputExhausted
		}
		data = bytescan.SkipHeader(data)
		lines++
	}

	for i := 0; i < cfg.SkipRows; i++ {
		if len(data) == 0 {
			return nil, 0, ferrors.ErrInputExhausted
		}
		data = bytescan.SkipHeader(data)
		lines++
	}

	return data, lines, nil
}

// dispatch runs one Line Parser per region on a bounded pool, in
// sub-region order, and returns their partial frames also in
// sub-region order regardless of completion order — the determinism
// spec.md §7 requires for "first error in sub-region order."
func dispatch(data []byte, regions []chunk.Region, cfg *Config, order []int, names []string, capTable *rowstats.CapacityTable, baseLine int64, localCapacity int) ([]*frame.Frame, error) {
	results := make([]*frame.Frame, len(regions))
	errs := make([]error, len(regions))

	pool := cfg.Pool
	if pool == nil {
		pool = &errgroup.Group{}
		pool.SetLimit(cfg.NThreads)
	}

	for i, region := range regions {
		i, region := i, region
		pool.Go(func() error {
			f, err := runWorker(data[region.Start:region.End], cfg, order, names, capTable, baseLine+region.StartLine, localCapacity)
			results[i] = f
			errs[i] = err
			return err
		})
	}

	// Wait only reports that *some* worker failed; scan errs in
	// sub-region order so the reported error is deterministic
	// regardless of which goroutine completes first.
	_ = pool.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func runWorker(data []byte, cfg *Config, order []int, names []string, capTable *rowstats.CapacityTable, startLine int64, localCapacity int) (*frame.Frame, error) {
	buffers := make([]coltype.Buffer, len(order))
	for i, col := range order {
		field := cfg.Schema[col]
		byteCap := 0
		if field.Type == coltype.String {
			byteCap = int(float64(capTable.Get(i)) * stringSafetyFactor)
		}
		buffers[i] = coltype.NewBuffer(field.Type, localCapacity, byteCap, cfg.Encoding)
	}

	parser := &lineparse.Parser{
		Delimiter:    cfg.Delimiter,
		Projection:   order,
		Buffers:      buffers,
		IgnoreErrors: cfg.IgnoreParserErrors,
		FieldNames:   names,
	}

	rows, err := parser.ParseRegion(data, startLine)
	if err != nil {
		return nil, err
	}

	f := frame.New(order, names)
	f.Height = rows
	for i, col := range order {
		c := buffers[i].Finalize()
		f.Columns[col] = c
		if c.Type == coltype.String {
			capTable.Observe(i, c.ByteLen())
		}
	}

	if cfg.Predicate != nil {
		keep, err := cfg.Predicate.Evaluate(f)
		if err != nil {
			return nil, &ferrors.PredicateError{Reason: err.Error()}
		}
		if len(keep) != f.Height {
			return nil, &ferrors.PredicateError{Reason: "predicate result length does not match frame height"}
		}
		f = f.Filter(keep)
	}

	return f, nil
}
