package chunk

import (
	"bytes"
	"testing"
)

func TestSplitCoversWholeInput(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 1000; i++ {
		buf.WriteString("1,2,3\n")
	}
	data := buf.Bytes()

	regions := Split(data, 4, 3, ',')
	if len(regions) == 0 {
		t.Fatal("expected at least one region")
	}

	// Regions must be contiguous, gap-free, and cover [0, len(data)).
	if regions[0].Start != 0 {
		t.Fatalf("first region should start at 0, got %d", regions[0].Start)
	}
	for i := 1; i < len(regions); i++ {
		if regions[i].Start != regions[i-1].End {
			t.Fatalf("gap/overlap between region %d and %d", i-1, i)
		}
	}
	if regions[len(regions)-1].End != len(data) {
		t.Fatalf("last region should end at %d, got %d", len(data), regions[len(regions)-1].End)
	}
}

func TestSplitSmallInputReturnsFewerRegions(t *testing.T) {
	data := []byte("1,2,3\n4,5,6\n")
	regions := Split(data, 16, 3, ',')
	if len(regions) == 0 || len(regions) >= 16 {
		t.Fatalf("expected fewer than 16 regions for tiny input, got %d", len(regions))
	}
}

func TestSplitEmptyInput(t *testing.T) {
	if regions := Split(nil, 4, 3, ','); regions != nil {
		t.Fatalf("expected nil regions for empty input, got %v", regions)
	}
}

func TestSplitRegionsAreLineAligned(t *testing.T) {
	data := []byte("a,b\nc,d\ne,f\ng,h\ni,j\nk,l\n")
	regions := Split(data, 3, 2, ',')
	for _, r := range regions {
		if r.Start > 0 && data[r.Start-1] != '\n' {
			t.Fatalf("region start %d is not right after a newline", r.Start)
		}
	}
}
