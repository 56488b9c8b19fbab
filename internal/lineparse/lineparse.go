// Package lineparse tokenizes CSV records into fields and dispatches
// each projected field into its column's coltype.Buffer. It is the
// worker-local component the Coordinator drives once per sub-region.
package lineparse

import (
	"bytes"

	"github.com/fastframe/fastframe/internal/coltype"
	"github.com/fastframe/fastframe/internal/ferrors"
	"github.com/fastframe/fastframe/internal/simd"
)

const quoteByte = '"'

// Parser tokenizes one sub-region of CSV bytes against a fixed column
// projection, appending each projected field into its Buffer.
//
// Buffers holds exactly one entry per entry in Projection, in the same
// (sorted, ascending) order, so the field cursor below can advance
// monotonically across a record without a map lookup per field.
type Parser struct {
	Delimiter    byte
	Projection   coltype.Projection // sorted ascending
	Buffers      []coltype.Buffer   // Buffers[i] corresponds to Projection[i]
	IgnoreErrors bool
	FieldNames   []string // parallel to Buffers, used for error messages
}

// ParseRegion tokenizes every record in data, a line-aligned byte
// region whose first record is absolute line number startLine, and
// appends each record's projected fields into p.Buffers.
//
// It returns the number of records parsed. A malformed field under a
// column's type is reported as a *ferrors.ParseError naming the
// absolute line and column unless IgnoreErrors is set, in which case
// the field is appended as null and parsing continues.
func (p *Parser) ParseRegion(data []byte, startLine int64) (int, error) {
	rows := 0
	line := startLine
	for len(data) > 0 {
		record, rest := splitRecord(data)
		if err := p.parseRecord(record, line); err != nil {
			return rows, err
		}
		rows++
		line++
		data = rest
	}
	return rows, nil
}

// splitRecord splits data at the first unquoted record terminator,
// returning the record (terminator stripped) and the remaining bytes.
// If no terminator is found, the whole of data is one final record.
func splitRecord(data []byte) (record, rest []byte) {
	inQuote := false
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == quoteByte:
			inQuote = !inQuote
			i++
		case !inQuote && c == '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return data[:i], data[i+2:]
			}
			return data[:i], data[i+1:]
		case !inQuote && c == '\n':
			return data[:i], data[i+1:]
		default:
			i++
		}
	}
	return data, nil
}

// parseRecord tokenizes one record's fields and appends the projected
// ones, in Projection order, into their buffers. Short records are
// padded with nulls for their missing projected columns (per the
// contract: "short records are padded with nulls for columns beyond
// the record's width"); tokenizing stops once the last projected column
// is filled, so fields after it are never tokenized.
func (p *Parser) parseRecord(record []byte, line int64) error {
	fieldIdx := 0  // 0-based position of the next field within the raw record
	cursor := 0    // position within p.Projection/p.Buffers of the next projected column
	want := len(p.Projection)

	for len(record) > 0 && cursor < want {
		raw, quoted, rest := nextField(record, p.Delimiter)
		if fieldIdx == p.Projection[cursor] {
			unescaped := raw
			if quoted {
				unescaped = unescapeQuotes(raw)
			}
			if err := p.Buffers[cursor].AppendValue(unescaped); err != nil {
				if p.IgnoreErrors {
					p.Buffers[cursor].AppendNull()
				} else {
					return &ferrors.ParseError{Line: line, Column: p.FieldNames[cursor], Reason: err.Error()}
				}
			}
			cursor++
		}
		record = rest
		fieldIdx++
	}

	// Record ended before every projected column was reached: pad the
	// rest with nulls.
	for cursor < want {
		p.Buffers[cursor].AppendNull()
		cursor++
	}
	return nil
}

// nextField consumes one delimiter-or-terminator-bounded field from
// the front of record. The returned rest excludes the consumed
// delimiter; record is assumed already stripped of its terminator by
// splitRecord, so the final field runs to the end of record.
//
// quoted reports whether the field was wrapped in quotes, which tells
// the caller whether escaped-quote unescaping is needed; unquoted
// fields are returned as a direct subslice with no copy.
func nextField(record []byte, delimiter byte) (raw []byte, quoted bool, rest []byte) {
	if len(record) > 0 && record[0] == quoteByte {
		return nextQuotedField(record, delimiter)
	}
	if idx := simd.Scan(record, delimiter); idx >= 0 {
		return record[:idx], false, record[idx+1:]
	}
	return record, false, nil
}

// nextQuotedField consumes a quoted field starting at record[0] == '"',
// honoring "" as an escaped literal quote, and returns everything
// between the opening and closing quote (escapes left intact for
// unescapeQuotes to resolve), plus whatever follows the field's
// closing quote and delimiter.
func nextQuotedField(record []byte, delimiter byte) (raw []byte, quoted bool, rest []byte) {
	i := 1
	for i < len(record) {
		idx := simd.Scan(record[i:], quoteByte)
		if idx < 0 {
			// Unterminated quote: treat the remainder as the field body.
			return record[1:], true, nil
		}
		i += idx
		if i+1 < len(record) && record[i+1] == quoteByte {
			// Escaped quote; keep scanning past both bytes.
			i += 2
			continue
		}
		// Closing quote.
		body := record[1:i]
		after := record[i+1:]
		if len(after) > 0 && after[0] == delimiter {
			after = after[1:]
		}
		return body, true, after
	}
	return record[1:], true, nil
}

// unescapeQuotes collapses every "" pair in raw into a single ". raw is
// the body of a quoted field, excluding its surrounding quotes.
func unescapeQuotes(raw []byte) []byte {
	if bytes.IndexByte(raw, quoteByte) < 0 {
		return raw
	}
	return bytes.ReplaceAll(raw, []byte(`""`), []byte(`"`))
}
