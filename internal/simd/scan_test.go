package simd

import "testing"

func TestScan(t *testing.T) {
	cases := []struct {
		data string
		want int
	}{
		{"", -1},
		{"abc", -1},
		{"a,b,c", 1},
		{"12345678,9", 8},
		{",", 0},
		{"aaaaaaaa,", 8},
	}
	for _, c := range cases {
		if got := Scan([]byte(c.data), ','); got != c.want {
			t.Errorf("Scan(%q, ',') = %d, want %d", c.data, got, c.want)
		}
	}
}

func TestScanEither(t *testing.T) {
	cases := []struct {
		data string
		want int
	}{
		{"", -1},
		{`abc"def`, 3},
		{"abc,def", 3},
		{`no match here at all........`, -1},
		{`12345678"`, 8},
	}
	for _, c := range cases {
		if got := ScanEither([]byte(c.data), ',', '"'); got != c.want {
			t.Errorf("ScanEither(%q) = %d, want %d", c.data, got, c.want)
		}
	}
}

func TestCountByte(t *testing.T) {
	cases := []struct {
		data string
		want int
	}{
		{"", 0},
		{"a,b,c", 2},
		{"1,2,3,4,5,6,7,8,9,10", 9},
		{"no-commas-here", 0},
	}
	for _, c := range cases {
		if got := CountByte([]byte(c.data), ','); got != c.want {
			t.Errorf("CountByte(%q) = %d, want %d", c.data, got, c.want)
		}
	}
}
