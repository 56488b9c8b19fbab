//go:build !windows

package source

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapRegion is a read-only memory-mapped file. Bytes are paged in by
// the kernel on first touch, rather than copied up front, which is
// what lets the Coordinator hand out sub-regions of arbitrarily large
// files without an initial full-file read.
type mmapRegion struct {
	data []byte
}

func mmapFile(f *os.File) (Region, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("fastframe: stat %s: %w", f.Name(), err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("fastframe: mmap %s: %w", f.Name(), err)
	}
	return &mmapRegion{data: data}, nil
}

func (r *mmapRegion) Bytes() []byte { return r.data }

func (r *mmapRegion) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}
