package rowstats

import (
	"math"
	"strings"
	"sync"
	"testing"
)

func TestCollectUniformLines(t *testing.T) {
	data := []byte(strings.Repeat("1234567890\n", 20)) // 11 bytes/line
	stats := Collect(data, len(data))
	if !stats.Enough {
		t.Fatal("expected a 20-line sample to be considered sufficient")
	}
	if stats.Mean != 11 {
		t.Fatalf("expected mean 11, got %v", stats.Mean)
	}
	if stats.StdDev != 0 {
		t.Fatalf("expected zero stddev for uniform lines, got %v", stats.StdDev)
	}
}

func TestCollectInsufficientSample(t *testing.T) {
	data := []byte("a\nb\nc\n")
	stats := Collect(data, len(data))
	if stats.Enough {
		t.Fatal("expected a 3-line sample to be insufficient")
	}
	if _, ok := stats.EstimateRows(1000); ok {
		t.Fatal("EstimateRows should refuse to guess from an insufficient sample")
	}
}

func TestCollectEmptyInput(t *testing.T) {
	stats := Collect(nil, 0)
	if stats.Lines != 0 || stats.Enough {
		t.Fatalf("expected zero-line stats for empty input, got %+v", stats)
	}
}

func TestEstimateRows(t *testing.T) {
	data := []byte(strings.Repeat("abcdefghij\n", 50)) // 11 bytes/line
	stats := Collect(data, len(data))
	rows, ok := stats.EstimateRows(1100)
	if !ok {
		t.Fatal("expected a usable estimate")
	}
	if rows != 100 {
		t.Fatalf("expected 100 estimated rows, got %d", rows)
	}
}

// TestEstimateRowsAppliesStdDevAdjustment uses a non-uniform sample (so
// stddev != 0) and checks the divisor actually subtracts 0.01*stddev
// from the mean, rather than dividing by the mean alone. A uniform
// sample can't distinguish the two formulas since stddev is zero.
func TestEstimateRowsAppliesStdDevAdjustment(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		n := 5
		if i%2 == 0 {
			n = 25
		}
		lines = append(lines, strings.Repeat("x", n))
	}
	data := []byte(strings.Join(lines, "\n") + "\n")
	stats := Collect(data, len(data))
	if stats.StdDev == 0 {
		t.Fatal("expected a nonzero stddev from a non-uniform sample")
	}

	const totalBytes = 10_000
	rows, ok := stats.EstimateRows(totalBytes)
	if !ok {
		t.Fatal("expected a usable estimate")
	}

	naive := int(math.Ceil(float64(totalBytes) / stats.Mean))
	want := int(math.Ceil(float64(totalBytes) / (stats.Mean - 0.01*stats.StdDev)))
	if rows != want {
		t.Fatalf("expected the stddev-adjusted estimate %d, got %d", want, rows)
	}
	if rows == naive {
		t.Fatalf("estimate %d matches the naive mean-only formula; stddev term is not being applied", rows)
	}
}

func TestCapacityTableObserveIsMonotonic(t *testing.T) {
	table := NewCapacityTable(2)
	table.Observe(0, 100)
	table.Observe(0, 50) // smaller observation must not lower the max
	if got := table.Get(0); got != 100 {
		t.Fatalf("expected max to stay 100, got %d", got)
	}
	table.Observe(0, 200)
	if got := table.Get(0); got != 200 {
		t.Fatalf("expected max to rise to 200, got %d", got)
	}
	if got := table.Get(1); got != 0 {
		t.Fatalf("expected untouched column to read 0, got %d", got)
	}
}

func TestCapacityTableConcurrentObserve(t *testing.T) {
	table := NewCapacityTable(1)
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			table.Observe(0, n)
		}(i)
	}
	wg.Wait()
	if got := table.Get(0); got != 100 {
		t.Fatalf("expected max observed value 100, got %d", got)
	}
}
