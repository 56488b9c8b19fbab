// Package bytescan provides pure, allocation-free functions over raw CSV
// bytes: BOM/whitespace/line-ending skipping and quote-aware record
// boundary location.
//
// These functions never allocate and never mutate their input; every
// function returns a suffix of the slice it was given.
package bytescan

// SkipBOM advances past a leading UTF-8 byte-order mark, if present.
func SkipBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

// SkipWhitespace advances past leading spaces and tabs. It does not
// consume newlines.
func SkipWhitespace(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	return b[i:]
}

// SkipLineEnding consumes at most one line terminator: "\r\n", "\n", or
// "\r". If b does not start with a terminator, it is returned unchanged.
func SkipLineEnding(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	switch b[0] {
	case '\r':
		if len(b) > 1 && b[1] == '\n' {
			return b[2:]
		}
		return b[1:]
	case '\n':
		return b[1:]
	default:
		return b
	}
}

// SkipHeader advances past one logical (quote-aware) line, including its
// terminator. If b contains no terminator, the whole slice is consumed.
func SkipHeader(b []byte) []byte {
	end, _, found := scanRecord(b)
	if !found {
		return b[len(b):]
	}
	return b[end:]
}

// NextLinePosition locates the byte offset of the next record boundary in
// b: the offset at which a candidate record begins whose first
// expectedFields-1 unquoted occurrences of delimiter appear before its
// terminator (or before end of input, for the final record). The bytes
// before the first terminator are skipped, since b may start mid-record.
// It is used to resynchronize the Chunker after an arbitrary byte split
// and to snap the n_rows byte cutoff to a record boundary.
//
// Returns (0, false) if no such boundary can be found before the input
// is exhausted.
func NextLinePosition(b []byte, expectedFields int, delimiter byte) (int, bool) {
	needed := expectedFields - 1
	if needed < 0 {
		needed = 0
	}

	pos := 0
	for pos < len(b) {
		end, _, found := scanRecordDelims(b[pos:], delimiter)
		if !found {
			return 0, false
		}
		pos += end
		if pos >= len(b) {
			return 0, false
		}
		if _, delims, _ := scanRecordDelims(b[pos:], delimiter); delims >= needed {
			return pos, true
		}
	}
	return 0, false
}

// scanRecord scans one quote-aware logical record starting at the
// beginning of b. It returns the offset immediately after the record's
// terminator, and whether a terminator was found before the input was
// exhausted.
func scanRecord(b []byte) (end int, delims int, found bool) {
	return scanRecordDelims(b, 0)
}

// scanRecordDelims scans one quote-aware logical record starting at the
// beginning of b, counting unquoted occurrences of delimiter along the
// way (delimiter == 0 disables counting). It returns the offset
// immediately past the terminator and the delimiter count.
func scanRecordDelims(b []byte, delimiter byte) (end int, delims int, found bool) {
	inQuote := false
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			i++
		case !inQuote && delimiter != 0 && c == delimiter:
			delims++
			i++
		case !inQuote && c == '\r':
			if i+1 < len(b) && b[i+1] == '\n' {
				return i + 2, delims, true
			}
			return i + 1, delims, true
		case !inQuote && c == '\n':
			return i + 1, delims, true
		default:
			i++
		}
	}
	return len(b), delims, false
}
