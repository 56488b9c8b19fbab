//go:build windows

package source

import (
	"io"
	"os"
)

// mmapFile falls back to a full read on Windows to avoid the unsafe
// pointer arithmetic a proper Windows mapping would need without an
// external library.
func mmapFile(f *os.File) (Region, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &bytesRegion{data: data}, nil
}
