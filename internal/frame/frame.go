// Package frame holds the Partial Frame and Result Frame type shared by
// every worker and the Coordinator that reduces their output.
package frame

import "github.com/fastframe/fastframe/internal/coltype"

// Frame maps a projected column's schema index to its finalized
// column. It is both a worker's partial output and, after
// concatenation, the final result: the two have identical shape.
type Frame struct {
	Columns map[int]*coltype.Column
	// Order is the sorted projection these columns were built under,
	// in display order.
	Order []int
	// Names holds one field name per entry of Order, for Schema().
	Names []string

	Height int
}

// New builds an empty frame over the given sorted projection/names.
func New(order []int, names []string) *Frame {
	return &Frame{
		Columns: make(map[int]*coltype.Column, len(order)),
		Order:   order,
		Names:   names,
	}
}

// Schema returns the projected schema: one field per entry of Order,
// named by Names and typed by that column's finalized data.
func (f *Frame) Schema() coltype.Schema {
	out := make(coltype.Schema, len(f.Order))
	for i, col := range f.Order {
		typ := coltype.String
		if c, ok := f.Columns[col]; ok {
			typ = c.Type
		}
		out[i] = coltype.Field{Name: f.Names[i], Type: typ}
	}
	return out
}

// Concat vertically concatenates partial frames, already in sub-region
// order, into a single result frame. Every frame must share the same
// Order; Concat panics otherwise, which would indicate a Coordinator
// bug (every worker is built from the same sorted projection).
func Concat(parts []*Frame) *Frame {
	if len(parts) == 0 {
		panic("frame: Concat requires at least one partial frame")
	}
	order := parts[0].Order
	names := parts[0].Names
	out := New(order, names)

	for _, col := range order {
		cols := make([]*coltype.Column, 0, len(parts))
		for _, p := range parts {
			if c, ok := p.Columns[col]; ok {
				cols = append(cols, c)
			}
		}
		if len(cols) == 0 {
			continue
		}
		out.Columns[col] = coltype.ConcatColumns(cols)
	}
	for _, p := range parts {
		out.Height += p.Height
	}
	return out
}

// Truncate returns a frame holding only the first n rows. If n >=
// f.Height, f is returned unchanged.
func (f *Frame) Truncate(n int) *Frame {
	if n >= f.Height {
		return f
	}
	out := New(f.Order, f.Names)
	out.Height = n
	for col, c := range f.Columns {
		out.Columns[col] = c.Truncate(n)
	}
	return out
}

// Filter returns a frame keeping only the rows where keep[i] is true.
func (f *Frame) Filter(keep []bool) *Frame {
	out := New(f.Order, f.Names)
	for col, c := range f.Columns {
		out.Columns[col] = c.Filter(keep)
	}
	for _, k := range keep {
		if k {
			out.Height++
		}
	}
	return out
}

// Column returns the finalized column for schema index col, or nil if
// absent.
func (f *Frame) Column(col int) *coltype.Column {
	return f.Columns[col]
}
