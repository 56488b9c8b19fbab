// Package chunk splits a byte region into line-aligned sub-regions so
// that independent workers can parse disjoint slices of a CSV file
// concurrently.
package chunk

import (
	"bytes"

	"github.com/fastframe/fastframe/internal/bytescan"
)

// Region is one disjoint, line-aligned [Start, End) sub-region of the
// byte slice handed to Split.
type Region struct {
	Start, End int
	// StartLine is the 0-based count of newline terminators preceding
	// Start within the slice passed to Split. The Coordinator adds the
	// count of lines consumed during preamble trimming to turn this into
	// an absolute line number for error reporting.
	StartLine int64
}

// Split partitions data into up to n disjoint, line-aligned sub-regions
// using bytescan.NextLinePosition to locate each boundary. Boundaries are
// precomputed for every worker up front (from evenly spaced byte-offset
// hints) before any region is handed out, so regions never gap or
// overlap regardless of how the heuristic resolves any one hint.
//
// If n boundaries cannot all be located — typically because data is too
// small to support a worker per delimiter occurrence — Split returns
// fewer, possibly one, regions. Concatenating records parsed from the
// returned regions in order reproduces parsing the whole of data
// sequentially.
func Split(data []byte, n, expectedFields int, delimiter byte) []Region {
	if n < 1 {
		n = 1
	}
	total := len(data)
	if total == 0 {
		return nil
	}

	chunkSize := total / n
	boundaries := make([]int, n+1)
	boundaries[0] = 0
	boundaries[n] = total

	for i := 1; i < n; i++ {
		hint := i * chunkSize
		if hint >= total {
			boundaries[i] = total
			continue
		}
		if pos, ok := bytescan.NextLinePosition(data[hint:], expectedFields, delimiter); ok {
			boundaries[i] = hint + pos
		} else {
			boundaries[i] = total
		}
	}

	// Hints are non-decreasing and NextLinePosition only scans forward,
	// but guard against a degenerate heuristic result regardless.
	for i := 1; i <= n; i++ {
		if boundaries[i] < boundaries[i-1] {
			boundaries[i] = boundaries[i-1]
		}
	}

	regions := make([]Region, 0, n)
	for i := 0; i < n; i++ {
		start, end := boundaries[i], boundaries[i+1]
		if start >= end {
			continue
		}
		startLine := int64(bytes.Count(data[:start], newline))
		regions = append(regions, Region{Start: start, End: end, StartLine: startLine})
	}
	return regions
}

var newline = []byte{'\n'}
