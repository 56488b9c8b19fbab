// Command fastframebench generates a synthetic CSV of a given size,
// ingests it with fastframe.Read, and reports throughput.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/fastframe/fastframe"
	"github.com/fastframe/fastframe/source"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: fastframebench <size_mb>")
		return
	}

	sizeMB, err := strconv.Atoi(os.Args[1])
	if err != nil || sizeMB <= 0 {
		fmt.Println("Usage: fastframebench <size_mb>")
		return
	}
	fmt.Printf("Generating %d MB CSV...\n", sizeMB)
	tmpDir, err := os.MkdirTemp("", "fastframe_bench")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	csvPath := filepath.Join(tmpDir, "bench.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		panic(err)
	}

	w := bufio.NewWriterSize(f, 64*1024)
	w.WriteString("id,code,value,description\n")

	bytesWritten := int64(0)
	limit := int64(sizeMB) * 1024 * 1024
	rows := 0
	buf := make([]byte, 0, 1024)
	rng := rand.New(rand.NewSource(123))

	for bytesWritten < limit {
		rows++
		buf = buf[:0]
		buf = fmt.Appendf(buf, "%d,US-%d,%d,\"Description for item %d with some padding to make it longer\"\n",
			rows, rng.Intn(1000), rng.Intn(10000), rows)
		n, _ := w.Write(buf)
		bytesWritten += int64(n)
	}
	w.Flush()
	f.Close()

	fmt.Printf("Generated %d rows (%.2f MB)\n", rows, float64(bytesWritten)/1024/1024)
	fmt.Println("Starting ingest...")

	schema := fastframe.Schema{
		{Name: "id", Type: fastframe.Int32},
		{Name: "code", Type: fastframe.String},
		{Name: "value", Type: fastframe.Int64},
		{Name: "description", Type: fastframe.String},
	}

	src, err := source.OpenFile(csvPath)
	if err != nil {
		panic(err)
	}
	defer src.Close()

	start := time.Now()
	result, err := fastframe.Read(fastframe.Config{
		Source:    src,
		Schema:    schema,
		HasHeader: true,
		NThreads:  runtime.NumCPU(),
		Verbose:   true,
	})
	if err != nil {
		panic(err)
	}
	elapsed := time.Since(start)

	mbPerSec := float64(bytesWritten) / 1024 / 1024 / elapsed.Seconds()
	fmt.Printf("\n--------------------------------------------------\n")
	fmt.Printf("Rows ingested: %d\n", result.Height)
	fmt.Printf("Throughput:    %.2f MB/s\n", mbPerSec)
	fmt.Printf("Time:          %v\n", elapsed)
	fmt.Printf("--------------------------------------------------\n")
}
