// Package simd locates delimiter and quote bytes within a line using a
// SIMD-within-a-register (SWAR) byte-parallel technique: eight bytes are
// compared against a target at once via XOR-and-detect-zero instead of
// one byte at a time. It is a portable, pure-Go stand-in for the real
// vector instructions a lower-level implementation would reach for.
package simd

import (
	"golang.org/x/sys/cpu"
)

// HasAVX2 reports whether the host CPU advertises AVX2 support. It is
// informational only — Scan never dispatches to real vector
// instructions, and nothing in this module calls it.
func HasAVX2() bool {
	return cpu.X86.HasAVX2
}

const (
	loBits  = 0x0101010101010101
	hiBits  = 0x8080808080808080
	lo7Bits = 0x7F7F7F7F7F7F7F7F
)

// hasZeroByte reports whether any of the eight bytes packed into v is
// zero, using the classic bit-trick: subtracting one from every lane
// borrows into the high bit of any lane that was zero, and ANDing with
// the complement of the original high bits isolates genuine borrows
// from lanes that had their high bit set going in.
func hasZeroByte(v uint64) bool {
	return (v-loBits)&^v&hiBits != 0
}

// Scan returns the index of the first occurrence of target in b, or -1
// if target does not appear. It processes b eight bytes at a time,
// falling back to a byte-at-a-time scan for the final partial word.
func Scan(b []byte, target byte) int {
	pattern := loBits * uint64(target)
	i := 0
	for ; i+8 <= len(b); i += 8 {
		word := le64(b[i:])
		if hasZeroByte(word ^ pattern) {
			break
		}
	}
	for ; i < len(b); i++ {
		if b[i] == target {
			return i
		}
	}
	return -1
}

// ScanEither returns the index of the first occurrence of either a or
// b within data, or -1 if neither appears, finding whichever of the two
// comes first in a single pass. The line parser does not use it; it
// calls Scan.
func ScanEither(data []byte, a, b byte) int {
	pa := loBits * uint64(a)
	pb := loBits * uint64(b)
	i := 0
	for ; i+8 <= len(data); i += 8 {
		word := le64(data[i:])
		if hasZeroByte(word^pa) || hasZeroByte(word^pb) {
			break
		}
	}
	for ; i < len(data); i++ {
		if data[i] == a || data[i] == b {
			return i
		}
	}
	return -1
}

// CountByte returns the number of occurrences of target in b.
func CountByte(b []byte, target byte) int {
	pattern := loBits * uint64(target)
	count := 0
	i := 0
	for ; i+8 <= len(b); i += 8 {
		word := le64(b[i:]) ^ pattern
		// Flag each zero lane exactly: adding 0x7F to a lane's low seven
		// bits sets its high bit unless the lane is zero, and no carry
		// crosses lanes (unlike the subtract-one trick, whose borrows
		// can flag a 0x01 lane above a zero lane). Then pop-count the
		// eight flag bits (one per lane) rather than the full word.
		flags := ^(((word & lo7Bits) + lo7Bits) | word) & hiBits
		for flags != 0 {
			count++
			flags &= flags - 1
		}
	}
	for ; i < len(b); i++ {
		if b[i] == target {
			count++
		}
	}
	return count
}

func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
