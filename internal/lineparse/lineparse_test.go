package lineparse

import (
	"errors"
	"testing"

	"github.com/fastframe/fastframe/internal/coltype"
	"github.com/fastframe/fastframe/internal/ferrors"
)

func newParser(proj coltype.Projection, types []coltype.DataType, ignoreErrors bool) (*Parser, []coltype.Buffer) {
	bufs := make([]coltype.Buffer, len(proj))
	names := make([]string, len(proj))
	for i, t := range types {
		bufs[i] = coltype.NewBuffer(t, 8, 64, coltype.UTF8)
		names[i] = "col"
	}
	return &Parser{
		Delimiter:    ',',
		Projection:   proj,
		Buffers:      bufs,
		IgnoreErrors: ignoreErrors,
		FieldNames:   names,
	}, bufs
}

func TestParseRegionBasic(t *testing.T) {
	p, bufs := newParser(coltype.IdentityProjection(3),
		[]coltype.DataType{coltype.Int32, coltype.String, coltype.Float64}, false)

	data := []byte("1,alice,1.5\n2,bob,2.5\n3,carol,3.5\n")
	rows, err := p.ParseRegion(data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 3 {
		t.Fatalf("expected 3 rows, got %d", rows)
	}
	ints := bufs[0].Finalize().Int32
	if ints[0] != 1 || ints[1] != 2 || ints[2] != 3 {
		t.Fatalf("unexpected int column: %v", ints)
	}
	strs := bufs[1].Finalize().Strings
	if strs[0] != "alice" || strs[1] != "bob" || strs[2] != "carol" {
		t.Fatalf("unexpected string column: %v", strs)
	}
}

func TestParseRegionQuotedEmbeddedNewline(t *testing.T) {
	p, bufs := newParser(coltype.IdentityProjection(2),
		[]coltype.DataType{coltype.String, coltype.Int32}, false)

	data := []byte("\"hello\nworld\",7\n")
	rows, err := p.ParseRegion(data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row, got %d", rows)
	}
	strs := bufs[0].Finalize().Strings
	if strs[0] != "hello\nworld" {
		t.Fatalf("expected embedded newline preserved, got %q", strs[0])
	}
}

func TestParseRegionEscapedQuote(t *testing.T) {
	p, bufs := newParser(coltype.Projection{0}, []coltype.DataType{coltype.String}, false)
	data := []byte(`"she said ""hi""",1` + "\n")
	if _, err := p.ParseRegion(data, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `she said "hi"`
	if got := bufs[0].Finalize().Strings[0]; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseRegionProjectionOrder(t *testing.T) {
	// Project columns 0 and 2 from a 3-field record, skipping column 1.
	p, bufs := newParser(coltype.Projection{0, 2},
		[]coltype.DataType{coltype.Int32, coltype.Int32}, false)
	data := []byte("10,ignored,30\n")
	if _, err := p.ParseRegion(data, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := bufs[0].Finalize().Int32[0]; got != 10 {
		t.Fatalf("col 0: got %d, want 10", got)
	}
	if got := bufs[1].Finalize().Int32[0]; got != 30 {
		t.Fatalf("col 2: got %d, want 30", got)
	}
}

func TestParseRegionShortRecordPadsNull(t *testing.T) {
	p, bufs := newParser(coltype.IdentityProjection(3),
		[]coltype.DataType{coltype.Int32, coltype.Int32, coltype.Int32}, false)
	data := []byte("1,2\n")
	if _, err := p.ParseRegion(data, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col := bufs[2].Finalize()
	if col.Len != 1 || !col.Null[0] {
		t.Fatalf("expected column 2 to hold one null, got %+v", col)
	}
}

func TestParseRegionIgnoreParserErrors(t *testing.T) {
	p, bufs := newParser(coltype.Projection{0}, []coltype.DataType{coltype.Int32}, true)
	data := []byte("not-a-number\n42\n")
	rows, err := p.ParseRegion(data, 0)
	if err != nil {
		t.Fatalf("unexpected error with IgnoreErrors set: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected 2 rows, got %d", rows)
	}
	col := bufs[0].Finalize()
	if !col.Null[0] {
		t.Fatalf("expected first row null under ignore_parser_errors")
	}
	if col.Int32[1] != 42 {
		t.Fatalf("expected second row parsed, got %d", col.Int32[1])
	}
}

func TestParseRegionErrorReportsAbsoluteLine(t *testing.T) {
	p, _ := newParser(coltype.Projection{0}, []coltype.DataType{coltype.Int32}, false)
	data := []byte("1\nnot-a-number\n")
	_, err := p.ParseRegion(data, 100)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var pe *ferrors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a *ferrors.ParseError, got %T", err)
	}
	// The bad field is on the second record of a region starting at line 100.
	if pe.Line != 101 {
		t.Fatalf("expected absolute line 101, got %d", pe.Line)
	}
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty error message")
	}
}
