package coltype

// Column is the finalized, immutable array produced by Buffer.Finalize.
// It stands in for the downstream columnar-array library's type: exactly
// one of the typed slices below is populated, selected by Type.
type Column struct {
	Type DataType
	Len  int

	Int32    []int32
	Int64    []int64
	Uint32   []uint32
	Uint64   []uint64
	Float32  []float32
	Float64  []float64
	BoolVals []bool
	Strings  []string
	Date     []int32 // days since Unix epoch
	Datetime []int64 // Unix milliseconds

	// Null marks which logical positions are null. len(Null) == Len.
	Null []bool
}

// ConcatColumns vertically concatenates same-typed columns, in order.
// It panics if cols is empty or the types disagree, which would indicate
// a Coordinator bug (every partial frame is built from the same schema).
func ConcatColumns(cols []*Column) *Column {
	if len(cols) == 0 {
		panic("coltype: ConcatColumns requires at least one column")
	}
	typ := cols[0].Type
	total := 0
	for _, c := range cols {
		if c.Type != typ {
			panic("coltype: ConcatColumns type mismatch")
		}
		total += c.Len
	}

	out := &Column{Type: typ, Len: total, Null: make([]bool, 0, total)}
	for _, c := range cols {
		out.Null = append(out.Null, c.Null...)
	}

	switch typ {
	case Int32:
		out.Int32 = make([]int32, 0, total)
		for _, c := range cols {
			out.Int32 = append(out.Int32, c.Int32...)
		}
	case Int64:
		out.Int64 = make([]int64, 0, total)
		for _, c := range cols {
			out.Int64 = append(out.Int64, c.Int64...)
		}
	case Uint32:
		out.Uint32 = make([]uint32, 0, total)
		for _, c := range cols {
			out.Uint32 = append(out.Uint32, c.Uint32...)
		}
	case Uint64:
		out.Uint64 = make([]uint64, 0, total)
		for _, c := range cols {
			out.Uint64 = append(out.Uint64, c.Uint64...)
		}
	case Float32:
		out.Float32 = make([]float32, 0, total)
		for _, c := range cols {
			out.Float32 = append(out.Float32, c.Float32...)
		}
	case Float64:
		out.Float64 = make([]float64, 0, total)
		for _, c := range cols {
			out.Float64 = append(out.Float64, c.Float64...)
		}
	case Bool:
		out.BoolVals = make([]bool, 0, total)
		for _, c := range cols {
			out.BoolVals = append(out.BoolVals, c.BoolVals...)
		}
	case String:
		out.Strings = make([]string, 0, total)
		for _, c := range cols {
			out.Strings = append(out.Strings, c.Strings...)
		}
	case Date:
		out.Date = make([]int32, 0, total)
		for _, c := range cols {
			out.Date = append(out.Date, c.Date...)
		}
	case Datetime:
		out.Datetime = make([]int64, 0, total)
		for _, c := range cols {
			out.Datetime = append(out.Datetime, c.Datetime...)
		}
	}
	return out
}

// Truncate returns a column holding only the first n rows of c; its
// slices share c's backing storage. If n >= c.Len, c itself is returned.
func (c *Column) Truncate(n int) *Column {
	if n >= c.Len {
		return c
	}
	out := &Column{Type: c.Type, Len: n, Null: c.Null[:n]}
	switch c.Type {
	case Int32:
		out.Int32 = c.Int32[:n]
	case Int64:
		out.Int64 = c.Int64[:n]
	case Uint32:
		out.Uint32 = c.Uint32[:n]
	case Uint64:
		out.Uint64 = c.Uint64[:n]
	case Float32:
		out.Float32 = c.Float32[:n]
	case Float64:
		out.Float64 = c.Float64[:n]
	case Bool:
		out.BoolVals = c.BoolVals[:n]
	case String:
		out.Strings = c.Strings[:n]
	case Date:
		out.Date = c.Date[:n]
	case Datetime:
		out.Datetime = c.Datetime[:n]
	}
	return out
}

// Filter returns a copy of c keeping only the rows where keep[i] is true.
// len(keep) must equal c.Len.
func (c *Column) Filter(keep []bool) *Column {
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	out := &Column{Type: c.Type, Len: n, Null: make([]bool, 0, n)}
	for i, k := range keep {
		if !k {
			continue
		}
		out.Null = append(out.Null, c.Null[i])
		switch c.Type {
		case Int32:
			out.Int32 = append(out.Int32, c.Int32[i])
		case Int64:
			out.Int64 = append(out.Int64, c.Int64[i])
		case Uint32:
			out.Uint32 = append(out.Uint32, c.Uint32[i])
		case Uint64:
			out.Uint64 = append(out.Uint64, c.Uint64[i])
		case Float32:
			out.Float32 = append(out.Float32, c.Float32[i])
		case Float64:
			out.Float64 = append(out.Float64, c.Float64[i])
		case Bool:
			out.BoolVals = append(out.BoolVals, c.BoolVals[i])
		case String:
			out.Strings = append(out.Strings, c.Strings[i])
		case Date:
			out.Date = append(out.Date, c.Date[i])
		case Datetime:
			out.Datetime = append(out.Datetime, c.Datetime[i])
		}
	}
	return out
}

// ByteLen returns the total length, in bytes, of the string data held by
// c. It is used to feed the shared string-capacity table. Zero for
// non-string columns.
func (c *Column) ByteLen() int {
	if c.Type != String {
		return 0
	}
	n := 0
	for _, s := range c.Strings {
		n += len(s)
	}
	return n
}
