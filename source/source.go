// Package source acquires the raw bytes a Reader operates over: an
// in-memory buffer, a memory-mapped file, or an LZ4-compressed file
// decompressed up front. It is the external collaborator the
// Coordinator asks for a byte Region before dispatching any chunk.
package source

import (
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

// Region is an acquired, read-only byte buffer plus the means to
// release any backing resource (an mmap, a temp buffer) once the
// Coordinator is done with it.
type Region interface {
	// Bytes returns the acquired data. The returned slice is valid
	// until Close is called and must not be mutated.
	Bytes() []byte
	// Close releases any resource backing Bytes. It is safe to call
	// more than once.
	Close() error
}

// bytesRegion wraps an in-memory buffer with no backing resource to
// release.
type bytesRegion struct {
	data []byte
}

// FromBytes wraps an already in-memory buffer as a Region. Close is a
// no-op: the caller retains ownership of data.
func FromBytes(data []byte) Region {
	return &bytesRegion{data: data}
}

func (r *bytesRegion) Bytes() []byte { return r.data }
func (r *bytesRegion) Close() error  { return nil }

// OpenFile acquires path's contents via a memory map on platforms that
// support it (see mmap_unix.go), falling back to a full read on
// platforms that don't (see mmap_windows.go). The file handle is closed
// before OpenFile returns; for a real mmap, the returned Region's Close
// unmaps the pages.
func OpenFile(path string) (Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fastframe: opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("fastframe: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return &bytesRegion{}, nil
	}

	return mmapFile(f)
}

// lz4Region holds the fully decompressed bytes of an LZ4-compressed
// file read up front; the compressed stream itself is not
// memory-mappable in any useful sense, so there is no lazy variant.
type lz4Region struct {
	data []byte
}

func (r *lz4Region) Bytes() []byte { return r.data }
func (r *lz4Region) Close() error  { return nil }

// OpenLZ4File reads and decompresses an LZ4-compressed CSV file in
// full. It is the Coordinator's entry point for the compressed-input
// source kind: the worker pool still operates on the decompressed
// bytes exactly as it would for a plain or mmap'd source, since LZ4
// frames cannot be split and re-synchronized mid-stream the way
// uncompressed CSV can.
func OpenLZ4File(path string) (Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fastframe: opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("fastframe: decompressing %s: %w", path, err)
	}
	return &lz4Region{data: data}, nil
}
