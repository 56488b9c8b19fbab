package coltype

import (
	"strconv"
	"strings"
	"time"
)

// Buffer is a typed, growable, append-only accumulator for one projected
// column within one worker. Every AppendX call with a successful result
// increments Len by exactly one; a parse error leaves Len unchanged so
// the caller can retry as a null under ignore-errors mode.
type Buffer interface {
	Len() int
	AppendNull()
	// AppendValue decodes raw (already unquoted/unescaped by the Line
	// Parser) under the buffer's type and appends it, or returns a
	// parse error and leaves the buffer unchanged.
	AppendValue(raw []byte) error
	Finalize() *Column
}

// dateLayouts are tried in order when decoding Date/Datetime fields. No
// third-party date-parsing library appears anywhere in the retrieval
// pack, so this uses the standard library's reference-layout parser
// directly (see DESIGN.md).
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Int32Buffer accumulates 32-bit signed integers.
type Int32Buffer struct {
	vals []int32
	null []bool
}

func NewInt32Buffer(capacity int) *Int32Buffer {
	return &Int32Buffer{vals: make([]int32, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *Int32Buffer) Len() int { return len(b.vals) }

func (b *Int32Buffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *Int32Buffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 32)
	if err != nil {
		return err
	}
	b.vals = append(b.vals, int32(v))
	b.null = append(b.null, false)
	return nil
}

func (b *Int32Buffer) Finalize() *Column {
	return &Column{Type: Int32, Len: len(b.vals), Int32: b.vals, Null: b.null}
}

// Int64Buffer accumulates 64-bit signed integers.
type Int64Buffer struct {
	vals []int64
	null []bool
}

func NewInt64Buffer(capacity int) *Int64Buffer {
	return &Int64Buffer{vals: make([]int64, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *Int64Buffer) Len() int { return len(b.vals) }

func (b *Int64Buffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *Int64Buffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return err
	}
	b.vals = append(b.vals, v)
	b.null = append(b.null, false)
	return nil
}

func (b *Int64Buffer) Finalize() *Column {
	return &Column{Type: Int64, Len: len(b.vals), Int64: b.vals, Null: b.null}
}

// Uint32Buffer accumulates 32-bit unsigned integers.
type Uint32Buffer struct {
	vals []uint32
	null []bool
}

func NewUint32Buffer(capacity int) *Uint32Buffer {
	return &Uint32Buffer{vals: make([]uint32, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *Uint32Buffer) Len() int { return len(b.vals) }

func (b *Uint32Buffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *Uint32Buffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	v, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return err
	}
	b.vals = append(b.vals, uint32(v))
	b.null = append(b.null, false)
	return nil
}

func (b *Uint32Buffer) Finalize() *Column {
	return &Column{Type: Uint32, Len: len(b.vals), Uint32: b.vals, Null: b.null}
}

// Uint64Buffer accumulates 64-bit unsigned integers.
type Uint64Buffer struct {
	vals []uint64
	null []bool
}

func NewUint64Buffer(capacity int) *Uint64Buffer {
	return &Uint64Buffer{vals: make([]uint64, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *Uint64Buffer) Len() int { return len(b.vals) }

func (b *Uint64Buffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *Uint64Buffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	v, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return err
	}
	b.vals = append(b.vals, v)
	b.null = append(b.null, false)
	return nil
}

func (b *Uint64Buffer) Finalize() *Column {
	return &Column{Type: Uint64, Len: len(b.vals), Uint64: b.vals, Null: b.null}
}

// Float32Buffer accumulates 32-bit floats.
type Float32Buffer struct {
	vals []float32
	null []bool
}

func NewFloat32Buffer(capacity int) *Float32Buffer {
	return &Float32Buffer{vals: make([]float32, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *Float32Buffer) Len() int { return len(b.vals) }

func (b *Float32Buffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *Float32Buffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	v, err := strconv.ParseFloat(string(raw), 32)
	if err != nil {
		return err
	}
	b.vals = append(b.vals, float32(v))
	b.null = append(b.null, false)
	return nil
}

func (b *Float32Buffer) Finalize() *Column {
	return &Column{Type: Float32, Len: len(b.vals), Float32: b.vals, Null: b.null}
}

// Float64Buffer accumulates 64-bit floats.
type Float64Buffer struct {
	vals []float64
	null []bool
}

func NewFloat64Buffer(capacity int) *Float64Buffer {
	return &Float64Buffer{vals: make([]float64, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *Float64Buffer) Len() int { return len(b.vals) }

func (b *Float64Buffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *Float64Buffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return err
	}
	b.vals = append(b.vals, v)
	b.null = append(b.null, false)
	return nil
}

func (b *Float64Buffer) Finalize() *Column {
	return &Column{Type: Float64, Len: len(b.vals), Float64: b.vals, Null: b.null}
}

// BoolBuffer accumulates booleans parsed from "true"/"false",
// case-insensitively.
type BoolBuffer struct {
	vals []bool
	null []bool
}

func NewBoolBuffer(capacity int) *BoolBuffer {
	return &BoolBuffer{vals: make([]bool, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *BoolBuffer) Len() int { return len(b.vals) }

func (b *BoolBuffer) AppendNull() {
	b.vals = append(b.vals, false)
	b.null = append(b.null, true)
}

func (b *BoolBuffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	s := string(raw)
	switch {
	case strings.EqualFold(s, "true"):
		b.vals = append(b.vals, true)
	case strings.EqualFold(s, "false"):
		b.vals = append(b.vals, false)
	default:
		return strconv.ErrSyntax
	}
	b.null = append(b.null, false)
	return nil
}

func (b *BoolBuffer) Finalize() *Column {
	return &Column{Type: Bool, Len: len(b.vals), BoolVals: b.vals, Null: b.null}
}

// StringBuffer accumulates decoded strings. NewStringBuffer accepts a
// byteHint for the string arena, but does not use it: strings are held
// in a slice sized from the row capacity only.
type StringBuffer struct {
	vals      []string
	null      []bool
	bytesUsed int
	encoding  Encoding
}

func NewStringBuffer(capacity, byteHint int, enc Encoding) *StringBuffer {
	_ = byteHint // sizing hint is advisory; Go's string slice needs no arena.
	return &StringBuffer{vals: make([]string, 0, capacity), null: make([]bool, 0, capacity), encoding: enc}
}

func (b *StringBuffer) Len() int { return len(b.vals) }

func (b *StringBuffer) AppendNull() {
	b.vals = append(b.vals, "")
	b.null = append(b.null, true)
}

// AppendValue stores a field already stripped of surrounding quotes and
// unescaped ("" -> ") by the Line Parser; it only applies the column's
// encoding.
func (b *StringBuffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	s := decodeString(raw, b.encoding)
	b.bytesUsed += len(s)
	b.vals = append(b.vals, s)
	b.null = append(b.null, false)
	return nil
}

// BytesUsed returns the total UTF-8 byte length of non-null strings
// appended so far, for the shared capacity table's feedback loop.
func (b *StringBuffer) BytesUsed() int { return b.bytesUsed }

func (b *StringBuffer) Finalize() *Column {
	return &Column{Type: String, Len: len(b.vals), Strings: b.vals, Null: b.null}
}

// DateBuffer accumulates dates as days since the Unix epoch.
type DateBuffer struct {
	vals []int32
	null []bool
}

func NewDateBuffer(capacity int) *DateBuffer {
	return &DateBuffer{vals: make([]int32, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *DateBuffer) Len() int { return len(b.vals) }

func (b *DateBuffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *DateBuffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	s := string(raw)
	var t time.Time
	var err error
	for _, layout := range dateLayouts {
		t, err = time.Parse(layout, s)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	days := int32(t.Unix() / 86400)
	b.vals = append(b.vals, days)
	b.null = append(b.null, false)
	return nil
}

func (b *DateBuffer) Finalize() *Column {
	return &Column{Type: Date, Len: len(b.vals), Date: b.vals, Null: b.null}
}

// DatetimeBuffer accumulates timestamps as Unix milliseconds.
type DatetimeBuffer struct {
	vals []int64
	null []bool
}

func NewDatetimeBuffer(capacity int) *DatetimeBuffer {
	return &DatetimeBuffer{vals: make([]int64, 0, capacity), null: make([]bool, 0, capacity)}
}

func (b *DatetimeBuffer) Len() int { return len(b.vals) }

func (b *DatetimeBuffer) AppendNull() {
	b.vals = append(b.vals, 0)
	b.null = append(b.null, true)
}

func (b *DatetimeBuffer) AppendValue(raw []byte) error {
	if len(raw) == 0 {
		b.AppendNull()
		return nil
	}
	s := string(raw)
	var t time.Time
	var err error
	for _, layout := range datetimeLayouts {
		t, err = time.Parse(layout, s)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	b.vals = append(b.vals, t.UnixMilli())
	b.null = append(b.null, false)
	return nil
}

func (b *DatetimeBuffer) Finalize() *Column {
	return &Column{Type: Datetime, Len: len(b.vals), Datetime: b.vals, Null: b.null}
}

// NewBuffer constructs the buffer variant matching typ, sized from the
// given row and (for strings) byte-arena capacity hints.
func NewBuffer(typ DataType, rowCapacity, byteCapacity int, enc Encoding) Buffer {
	switch typ {
	case Int32:
		return NewInt32Buffer(rowCapacity)
	case Int64:
		return NewInt64Buffer(rowCapacity)
	case Uint32:
		return NewUint32Buffer(rowCapacity)
	case Uint64:
		return NewUint64Buffer(rowCapacity)
	case Float32:
		return NewFloat32Buffer(rowCapacity)
	case Float64:
		return NewFloat64Buffer(rowCapacity)
	case Bool:
		return NewBoolBuffer(rowCapacity)
	case String:
		return NewStringBuffer(rowCapacity, byteCapacity, enc)
	case Date:
		return NewDateBuffer(rowCapacity)
	case Datetime:
		return NewDatetimeBuffer(rowCapacity)
	default:
		panic("coltype: unknown data type")
	}
}
